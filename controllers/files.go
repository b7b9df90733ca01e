package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/Mohamed-Galdi/myFreelanceV2/database"
	"github.com/Mohamed-Galdi/myFreelanceV2/models"
	"github.com/Mohamed-Galdi/myFreelanceV2/utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// tempFilePrefix is the bucket folder holding staged uploads.
const tempFilePrefix = "TempFiles"

var allowedUploadTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// POST /files/upload
//
// Stages a multipart upload under a fresh token and returns the token as the
// plain response body. The file stays in the staging area until a form submit
// commits it or a revert removes it.
func UploadTempFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("filepond")
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No file uploaded"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		utils.WriteValidationErrors(w, map[string]string{
			"filepond": "The file must be a png, jpeg, webp or svg image.",
		})
		return
	}

	name := path.Base(header.Filename)
	if name == "" || name == "." || name == "/" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid file name"})
		return
	}

	token := uuid.NewString()
	objectPath := fmt.Sprintf("%s/%s/%s", tempFilePrefix, token, name)

	if err := utils.UploadToS3(objectPath, file); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store file"})
		return
	}

	record := models.TempFile{
		Name:   name,
		Folder: token,
		Path:   objectPath,
		Type:   contentType,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		_ = utils.DeleteFromS3(objectPath)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to store file"})
		return
	}

	// FilePond expects the raw token back, not a JSON envelope.
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, token)
}

// POST /files/revert/{token}
//
// Discards a staged upload.
func RevertTempFile(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(mux.Vars(r)["token"])
	if token == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Missing upload token"})
		return
	}

	db := database.DB
	var record models.TempFile
	if err := db.Where("folder = ?", token).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Upload not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	_ = utils.DeleteFromS3(record.Path)
	if err := db.Delete(&record).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to discard upload"})
		return
	}

	writeEmptySuccess(w)
}

// commitTempFile moves a staged upload to its permanent home under destDir,
// renamed from the owning record's title. Returns the permanent object path,
// or nil when the token does not match a staged file.
func commitTempFile(token, destDir, title string) (*string, error) {
	db := database.DB

	var record models.TempFile
	if err := db.Where("folder = ?", token).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	destPath := destDir + "/" + utils.UniqueFileName(title, record.Name)
	if err := utils.CopyWithinS3(record.Path, destPath); err != nil {
		return nil, err
	}

	// Staging cleanup is best effort: a leftover temp object never shadows
	// the committed one.
	_ = utils.DeleteFromS3(record.Path)
	_ = db.Delete(&record).Error

	return &destPath, nil
}
