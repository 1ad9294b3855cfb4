package handler

import "net/http"

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty responds 204 No Content, e.g. after clearing a session's history.
func Empty() Response {
	return emptyResponse{status: http.StatusNoContent}
}

// EmptyWithStatus responds with status and no body.
func EmptyWithStatus(status int) Response {
	return emptyResponse{status: status}
}
