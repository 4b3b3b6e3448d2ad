package images

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postImage(t *testing.T, r *gin.Engine, contentType, body, uploadName string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="pic"`)
	h.Set("Content-Type", contentType)
	pw, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	_, _ = pw.Write([]byte(body))
	if uploadName != "" {
		_ = w.WriteField("uploadName", uploadName)
	}
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/images/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var payload map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, payload
}

func deleteImage(r *gin.Engine, body string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/images/delete", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	var payload map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &payload)
	return resp, payload
}

func TestHandlerUploadAndDelete(t *testing.T) {
	r := newTestRouter(t)

	resp, payload := postImage(t, r, "image/png", "png", "logo")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	data := payload["data"].(map[string]any)
	if data["imageUrl"] != publicURL+"/logo" || data["imageByteSize"] != float64(3) {
		t.Fatalf("unexpected data %v", data)
	}

	body, _ := json.Marshal(map[string]string{"imageUrl": publicURL + "/logo"})
	resp, payload = deleteImage(r, string(body))
	if resp.Code != http.StatusOK || payload["message"] != "Successfully deleted the image." {
		t.Fatalf("expected delete success, got %d %v", resp.Code, payload)
	}
}

func TestHandlerUploadRejections(t *testing.T) {
	r := newTestRouter(t)

	resp, payload := postImage(t, r, "image/gif", "gif", "")
	if resp.Code != http.StatusBadRequest || payload["errorCode"] != float64(4901) {
		t.Fatalf("expected 4901, got %d %v", resp.Code, payload)
	}
	data := payload["data"].(map[string]any)
	if data["imageUrl"] != nil || data["contentType"] != "image/gif" {
		t.Fatalf("expected rejected image details, got %v", data)
	}

	resp, payload = postImage(t, r, "image/png", "x", "bad name")
	if resp.Code != http.StatusBadRequest || payload["errorCode"] != float64(4906) {
		t.Fatalf("expected 4906, got %d %v", resp.Code, payload)
	}

	resp, payload = postImage(t, r, "image/png", string(make([]byte, 65)), "")
	if resp.Code != http.StatusBadRequest || payload["errorCode"] != float64(4902) {
		t.Fatalf("expected 4902, got %d %v", resp.Code, payload)
	}
}

func TestHandlerDeleteRejections(t *testing.T) {
	r := newTestRouter(t)

	resp, payload := deleteImage(r, `{}`)
	if resp.Code != http.StatusBadRequest || payload["errorCode"] != float64(4000) {
		t.Fatalf("expected 4000, got %d %v", resp.Code, payload)
	}
	resp, payload = deleteImage(r, `{"imageUrl":"https://other.test/logo"}`)
	if resp.Code != http.StatusBadRequest || payload["errorCode"] != float64(4903) {
		t.Fatalf("expected 4903, got %d %v", resp.Code, payload)
	}
}
