package list_slots

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-InterviewScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-InterviewScheduler/internal/service/slots/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// status, userId, start, end, page, perPage
func ToServiceRequest(tenantID string, q url.Values) (*models.ListSlotsRequest, error) {
	req := &models.ListSlotsRequest{TenantID: tenantID}

	if status := q.Get("status"); status != "" {
		req.Status = &status
	}
	if userID := q.Get("userId"); userID != "" {
		req.UserID = &userID
	}

	var err error
	if req.Start, err = handlers.ParseOptionalTime("start", q.Get("start")); err != nil {
		return nil, err
	}
	if req.End, err = handlers.ParseOptionalTime("end", q.Get("end")); err != nil {
		return nil, err
	}

	if page := q.Get("page"); page != "" {
		if req.Page, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
	}
	if perPage := q.Get("perPage"); perPage != "" {
		if req.PerPage, err = strconv.Atoi(perPage); err != nil {
			return nil, err
		}
	}
	return req, nil
}
