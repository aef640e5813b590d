// Package alert builds the notification headers clients show after a mutating request.
package alert

import "net/http"

const ApplicationName = "libraryApp"

const (
	HeaderAlert  = "X-" + ApplicationName + "-alert"
	HeaderError  = "X-" + ApplicationName + "-error"
	HeaderParams = "X-" + ApplicationName + "-params"
)

type Event string

const (
	Created Event = "created"
	Updated Event = "updated"
	Deleted Event = "deleted"
)

func New(message, param string) http.Header {
	h := make(http.Header)
	h.Set(HeaderAlert, message)
	h.Set(HeaderParams, param)
	return h
}

// Entity reports event on the entity identified by id, e.g. libraryApp.library.created.
func Entity(entityName string, event Event, id string) http.Header {
	return New(ApplicationName+"."+entityName+"."+string(event), id)
}

func Failure(entityName, errorKey string) http.Header {
	h := make(http.Header)
	h.Set(HeaderError, "error."+errorKey)
	h.Set(HeaderParams, entityName)
	return h
}

// Exposed lists the headers browsers must be allowed to read.
func Exposed() []string {
	return []string{HeaderAlert, HeaderError, HeaderParams}
}
