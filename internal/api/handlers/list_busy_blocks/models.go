package list_busy_blocks

import (
	"net/url"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/calendar/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров start, end, source
func ToServiceRequest(tenantID, userID string, q url.Values) (*models.ListBusyBlocksRequest, error) {
	req := &models.ListBusyBlocksRequest{TenantID: tenantID, UserID: userID}

	var err error
	if req.Start, err = handlers.ParseOptionalTime("start", q.Get("start")); err != nil {
		return nil, err
	}
	if req.End, err = handlers.ParseOptionalTime("end", q.Get("end")); err != nil {
		return nil, err
	}
	if source := q.Get("source"); source != "" {
		req.Source = &source
	}
	return req, nil
}
