package rule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда правило не найдено и нет правила по умолчанию
	ErrRuleNotFound = errors.New("rule.repository: scheduling rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rule.repository: failed to scan row")
)
