package opensearch

import "errors"

var (
	// ErrConnectionFailed indicates the client could not be created or the
	// cluster did not answer the initial health check.
	ErrConnectionFailed = errors.New("opensearch connection failed")

	// ErrHealthcheckFailed indicates the cluster is unreachable or unhealthy.
	ErrHealthcheckFailed = errors.New("opensearch healthcheck failed")
)
