package response

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"FocusDesk/pkg/errors"
)

func TestErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.InvalidConfig, http.StatusBadRequest},
		{fmt.Errorf("%w: 0 not within 1..10800", errors.InvalidConfig), http.StatusBadRequest},
		{errors.InvalidDate, http.StatusBadRequest},
		{errors.InvalidMonth, http.StatusBadRequest},
		{errors.TaskTextEmpty, http.StatusBadRequest},
		{errors.TaskNotFound, http.StatusNotFound},
		{errors.PersistenceUnavailable, http.StatusServiceUnavailable},
		{errors.Definition{Code: "SOMETHING_ELSE"}, http.StatusInternalServerError},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, errorToHTTPStatus(tt.err), tt.err.Error())
	}
}
