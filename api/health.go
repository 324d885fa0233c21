package api

import "net/http"

// health reports liveness along with the number of loaded appointments.
func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	a.Response(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"appointments": a.store.Len(),
	})
}
