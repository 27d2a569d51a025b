package handlers

import (
	"net/http"
)

const maxImageSize = 10 << 20

func (h *Handler) uploadUserImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
	err := r.ParseMultipartForm(maxImageSize)
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Invalid image upload", err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.httpError(w, http.StatusBadRequest, "Missing image file", err)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	url, err := h.images.UploadUserImage(r.Context(), file)
	if err != nil {
		h.httpError(w, http.StatusBadGateway, "Error uploading image", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
