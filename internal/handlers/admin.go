package handlers

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Hunter28-lucky/Ecom-stores/internal/models"
	"github.com/Hunter28-lucky/Ecom-stores/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/nfnt/resize"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.Store.GetUserByUsername(username)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid username or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	session.Values["authenticated"] = true
	session.Values["user_id"] = user.ID
	session.Options.Path = "/"
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + user.Username + "!"})

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful", "user_id", user.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// AuthMiddleware ensures the user is logged in
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, "admin-session")
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			session.Save(r, w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats()
	if err != nil {
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"Stats":   stats,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) AddProductForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("admin_add_product.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, "admin-session")
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"Values":    r.Form,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	err := r.ParseMultipartForm(10 << 20) // 10MB
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "File too large. Max 10MB."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	product, errors := parseProductForm(r)
	if product.Status == "" {
		product.Status = "available"
	}

	file, header, fileErr := r.FormFile("image")
	if fileErr != nil {
		errors["image"] = "Image file is required."
	}

	if len(errors) > 0 {
		for _, msg := range errors {
			session.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}
	defer file.Close()

	imageURL, err := saveUploadedImage(file, header.Filename)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: err.Error()})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}
	product.ImageURL = imageURL
	product.Images = []string{imageURL}

	if err := h.Store.CreateProduct(product); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error saving product to database."})
		http.Redirect(w, r, "/admin/products/new", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product added successfully!"})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, "admin-session")
	defer session.Save(r, w)

	idStr := r.FormValue("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid ID."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	if err := h.Store.DeleteProduct(id); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Error deleting product."})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Product deleted successfully!"})
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// parseProductForm pulls the shared create/update fields and validates them.
func parseProductForm(r *http.Request) (*models.Product, map[string]string) {
	errors := make(map[string]string)

	name := r.FormValue("name")
	priceStr := r.FormValue("price")
	status := r.FormValue("status")

	if name == "" {
		errors["name"] = "Name is required."
	}
	if priceStr == "" {
		errors["price"] = "Price is required."
	}
	price, err := strconv.Atoi(priceStr)
	if err != nil {
		errors["price"] = "Invalid price format."
	} else if price <= 0 {
		errors["price"] = "Price must be positive."
	}
	originalPrice, _ := strconv.Atoi(r.FormValue("original_price"))
	rating, _ := strconv.ParseFloat(r.FormValue("rating"), 64)
	reviewCount, _ := strconv.Atoi(r.FormValue("review_count"))

	if status != "" {
		validStatuses := map[string]bool{"available": true, "out_of_stock": true, "archived": true}
		if !validStatuses[status] {
			errors["status"] = "Invalid status selected."
		}
	}

	var features []string
	for _, line := range strings.Split(r.FormValue("features"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			features = append(features, line)
		}
	}

	return &models.Product{
		Name:          name,
		Description:   r.FormValue("description"),
		Price:         price,
		OriginalPrice: originalPrice,
		Category:      r.FormValue("category"),
		Rating:        rating,
		ReviewCount:   reviewCount,
		Features:      features,
		Status:        status,
	}, errors
}

// saveUploadedImage decodes, resizes to 800px wide and stores the upload as
// an optimized JPEG under static/uploads.
func saveUploadedImage(file io.Reader, filename string) (string, error) {
	var img image.Image
	var err error
	ext := filepath.Ext(filename)
	switch ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpeg", ".jpg":
		img, err = jpeg.Decode(file)
	default:
		return "", fmt.Errorf("Unsupported image format. Only PNG, JPG, JPEG are allowed.")
	}
	if err != nil {
		return "", fmt.Errorf("Failed to decode image.")
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)

	name := fmt.Sprintf("%s.jpg", uuid.New().String())
	uploadPath := filepath.Join("static/uploads", name)

	out, err := os.Create(uploadPath)
	if err != nil {
		return "", fmt.Errorf("Error saving image file.")
	}
	defer out.Close()

	if err := jpeg.Encode(out, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("Error encoding image.")
	}

	return "/static/uploads/" + name, nil
}
