// helpers/storage/storage.go
package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"praktikly_backend/internals/configs"
)

const (
	bucketImages    = "images"
	bucketDocuments = "documents"

	maxImageWidth = 1280
)

// UploadImage re-encodes an uploaded logo/avatar as webp (resized to fit
// maxImageWidth) and stores it; returns the public URL.
func UploadImage(folder string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open image file: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Fit(img, maxImageWidth, maxImageWidth*4, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode webp: %w", err)
	}

	base := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	filename := GenerateUniqueFilename(folder, base+".webp")
	if err := uploadToSupabase(bucketImages, filename, "image/webp", buf); err != nil {
		return "", err
	}
	return publicURL(bucketImages, filename), nil
}

// UploadDocument stores an attachment (CV, cover letter, signed agreement)
// as-is and returns the public URL.
func UploadDocument(folder string, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	filename := GenerateUniqueFilename(folder, fileHeader.Filename)
	if err := uploadToSupabase(bucketDocuments, filename, contentType, buf); err != nil {
		return "", err
	}
	return publicURL(bucketDocuments, filename), nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeChars.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename prefixes folder + timestamp + short uuid.
func GenerateUniqueFilename(folder, original string) string {
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s/%d_%s_%s", folder, time.Now().Unix(), short, sanitizeFilename(original))
}

func uploadToSupabase(bucket, filename, contentType string, data *bytes.Buffer) error {
	if configs.SupabaseProjectURL == "" || configs.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL or SUPABASE_SERVICE_ROLE_KEY is not set")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", configs.SupabaseProjectURL, bucket, filename)

	req, err := http.NewRequest(http.MethodPut, endpoint, data)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+configs.SupabaseServiceKey)
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed (%d): %s", resp.StatusCode, string(body))
	}
	return nil
}

func publicURL(bucket, filename string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		configs.SupabaseProjectURL, bucket, url.PathEscape(filename))
}
