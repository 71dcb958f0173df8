package handlers

import "net/http"

// Home sends visitors to the workspace or the sign-in page.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if ActiveSession(r) {
		redirectToApp(w, r)
		return
	}
	redirectToLogin(w, r)
}
