package server

import (
	"encoding/json"
	"net/http"

	"github.com/jasonish/idsrule/log"
)

type HttpStatusResponseBody struct {
	StatusCode int    `json:"status"`
	Message    string `json:"message,omitempty"`
}

// HttpResponse can be returned by API handlers to control how the response
// is processed.
type HttpResponse struct {

	// Set the status code of the reponse. If not provided, 200 (OK) will
	// be used.
	statusCode int

	// The content type of the response. Defaults to application/json as
	// this is primarily used for API responses.
	contentType string

	// The body of the response. If content type is application/json or
	// empty (defaulting to application/json) the body will be serialized
	// to json.
	//
	// If the content type is not application/json it will be attempted
	// to be written out as bytes.
	body interface{}
}

func HttpNotFoundResponse(message string) HttpResponse {
	return HttpResponse{
		statusCode:  http.StatusNotFound,
		contentType: "application/json",
		body: HttpStatusResponseBody{
			http.StatusNotFound,
			message,
		},
	}
}

func HttpTextResponse(body string) HttpResponse {
	return HttpResponse{
		contentType: "text/plain; charset=utf-8",
		body:        []byte(body),
	}
}

type ApiHandlerFunc func(appContext AppContext, r *http.Request) interface{}

type ApiHandler struct {
	appContext AppContext
	handler    ApiHandlerFunc
}

func writeJson(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response: %v", err)
	}
}

func (h ApiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := h.handler(h.appContext, r)
	if response == nil {
		return
	}
	switch response := response.(type) {
	case error:
		writeJson(w, http.StatusBadRequest, HttpStatusResponseBody{
			StatusCode: http.StatusBadRequest,
			Message:    response.Error(),
		})
	case HttpResponse:
		statusCode := http.StatusOK
		contentType := "application/json"

		// Set status code if provided.
		if response.statusCode != 0 {
			statusCode = response.statusCode
		}

		// Set content type if provided.
		if response.contentType != "" {
			contentType = response.contentType
		}

		if contentType == "application/json" {
			writeJson(w, statusCode, response.body)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(statusCode)
		switch body := response.body.(type) {
		case []byte:
			w.Write(body)
		default:
			log.Error("Don't know how to write reponse body for content type %s", contentType)
		}
	default:
		writeJson(w, http.StatusOK, response)
	}
}

func ApiF(appContext AppContext, handler ApiHandlerFunc) http.Handler {
	return ApiHandler{
		appContext,
		handler,
	}
}
