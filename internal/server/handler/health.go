package handler

import (
	"net/http"

	"github.com/garrettladley/huddle/internal/version"
	"github.com/garrettladley/huddle/internal/xhttp"
)

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, map[string]string{
		"status":  "ok",
		"version": version.Get(),
	})
}
