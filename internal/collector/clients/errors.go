package clients

import (
	domainerrors "github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/errors"
	"github.com/go-resty/resty/v2"
)

// checkResponse сводит сетевую ошибку и не-2xx ответ к ErrUpstreamUnavailable.
func checkResponse(service string, resp *resty.Response, err error) error {
	if err != nil {
		return &domainerrors.ErrUpstreamUnavailable{Service: service, Cause: err}
	}

	if !resp.IsSuccess() {
		return &domainerrors.ErrUpstreamUnavailable{
			Service: service,
			Cause:   &domainerrors.HTTPError{StatusCode: resp.StatusCode()},
		}
	}

	return nil
}
