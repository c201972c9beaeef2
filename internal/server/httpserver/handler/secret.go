package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/plainsight/plainsight-go/internal/core/domain"
	"github.com/plainsight/plainsight-go/internal/core/stego"
	"github.com/plainsight/plainsight-go/internal/imageio"
)

// handleConceal handles POST /v1/conceal.
//
// Form fields: image (file), message, passkey, format (optional, png or
// bmp). The response body is the encoded image.
func (h *Handler) handleConceal(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	format := h.format
	if v := r.FormValue(FieldFormat); v != "" {
		f, err := imageio.ParseOutputFormat(v)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		format = f
	}

	img, err := h.readImage(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if err := imageio.CheckWritable(img.raster, format); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	pix, err := h.svc.Conceal(r.Context(), img.raster.Pix, r.FormValue(FieldMessage), r.FormValue(FieldPasskey))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img.raster.WithPix(pix), format); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	name := filepath.Base(imageio.OutputPath(img.filename, "", format))
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set(HeaderCapacityBytes, strconv.Itoa(stego.Capacity(len(pix))))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug("write image response", "error", err)
	}
}

// handleReveal handles POST /v1/reveal.
//
// Form fields: image (file), passkey.
func (h *Handler) handleReveal(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	img, err := h.readImage(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	message, err := h.svc.Reveal(r.Context(), img.raster.Pix, r.FormValue(FieldPasskey))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, &RevealResponse{Message: message})
}

// handleInspect handles POST /v1/inspect.
//
// Form fields: image (file).
func (h *Handler) handleInspect(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	img, err := h.readImage(r)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	report := h.svc.Inspect(r.Context(), img.raster.Pix)
	report.Format = string(img.format)
	report.Width = img.raster.Width
	report.Height = img.raster.Height
	report.Channels = img.raster.Channels

	h.writeJSON(w, r, http.StatusOK, report)
}

// parseForm bounds the body and parses the multipart form.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	if r.ContentLength > h.maxUpload {
		return domain.ErrRequestTooLarge.WithDetails(fmt.Sprintf("limit is %d bytes", h.maxUpload))
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return domain.ErrRequestTooLarge.WithDetails(fmt.Sprintf("limit is %d bytes", tooLarge.Limit))
		}
		return domain.ErrBadRequest.WithDetails("expected a multipart/form-data body").WithCause(err)
	}
	return nil
}

type upload struct {
	raster   *imageio.Raster
	format   imageio.Format
	filename string
}

// readImage decodes the uploaded image.
func (h *Handler) readImage(r *http.Request) (*upload, error) {
	file, header, err := r.FormFile(FieldImage)
	if err != nil {
		return nil, domain.ErrEmptyArgument.WithDetails(FieldImage)
	}
	defer file.Close()

	raster, format, err := imageio.Decode(file)
	if err != nil {
		return nil, err
	}
	name := header.Filename
	if name == "" {
		name = "image" + format.Ext()
	}
	return &upload{raster: raster, format: format, filename: name}, nil
}
