package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
)

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Store.GetAllProducts()
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_products.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Products":  products,
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	product, err := h.Store.GetProductByID(id)
	if err != nil {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	tmpl := h.Templates.Get("admin_edit_product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"Product":   product,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	err := r.ParseMultipartForm(10 << 20) // 10MB
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	id, _ := strconv.Atoi(r.FormValue("id"))

	product, errors := parseProductForm(r)
	product.ID = id
	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit?id=%d", id), http.StatusSeeOther)
		return
	}

	// Keep the stored gallery when the form leaves the image untouched.
	if existing, err := h.Store.GetProductByID(id); err == nil {
		product.ImageURL = existing.ImageURL
		product.Images = existing.Images
	}

	if err := h.Store.UpdateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error updating product."})
		http.Redirect(w, r, fmt.Sprintf("/admin/products/edit?id=%d", id), http.StatusSeeOther)
		return
	}

	// Handle optional image replacement
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		if imageURL, err := saveUploadedImage(file, header.Filename); err == nil {
			h.Store.UpdateProductImage(id, imageURL)
		} else {
			session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
			http.Redirect(w, r, fmt.Sprintf("/admin/products/edit?id=%d", id), http.StatusSeeOther)
			return
		}
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product updated successfully!"})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
