package check_conflicts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequest(t *testing.T) {
	valid := func() *Request {
		return &Request{TenantID: "t1", UserIDs: []string{"u1", "u2"}, Start: at(10, 0), End: at(11, 0)}
	}

	cases := []struct {
		name   string
		mutate func(r *Request)
		want   error
	}{
		{name: "valid", mutate: func(r *Request) {}},
		{name: "no tenant", mutate: func(r *Request) { r.TenantID = "" }, want: ErrInvalidInput},
		{name: "no participants", mutate: func(r *Request) { r.UserIDs = nil }, want: ErrInvalidInput},
		{name: "panel too large", mutate: func(r *Request) { r.UserIDs = []string{"u1", "u2", "u3"} }, want: ErrPanelTooLarge},
		{name: "empty user id", mutate: func(r *Request) { r.UserIDs = []string{"u1", ""} }, want: ErrInvalidInput},
		{name: "zero start", mutate: func(r *Request) { r.Start = time.Time{} }, want: ErrInvalidInput},
		{name: "empty range", mutate: func(r *Request) { r.End = r.Start }, want: ErrInvalidInput},
		{name: "longer than a working day", mutate: func(r *Request) { r.End = at(19, 0); r.Start = at(10, 59) }, want: ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid()
			tc.mutate(req)

			err := validateRequest(req, 2)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
