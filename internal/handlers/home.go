package handlers

import (
	"net/http"

	"github.com/Hunter28-lucky/Ecom-stores/internal/store"
	"github.com/gorilla/sessions"
)

type HomeHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetPublicProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	publicSession, _ := h.SessionStore.Get(r, "public-session")
	adminSession, _ := h.SessionStore.Get(r, "admin-session")

	isAdmin := false
	if auth, ok := adminSession.Values["authenticated"].(bool); ok && auth {
		isAdmin = true
	}

	data := map[string]interface{}{
		"Products": products,
		"Flashes":  GetFlash(publicSession),
		"IsAdmin":  isAdmin,
	}
	publicSession.Save(r, w)
	tmpl.Execute(w, data)
}
