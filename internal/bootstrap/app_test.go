package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"filemanager-backend/internal/files"
	"filemanager-backend/internal/shared/config"
)

func devConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:             "dev",
		ObjectStoreType: config.StoreLocal,
		LocalStoreDir:   t.TempDir(),
		LocalPublicURL:  "https://objects.example.test",
		Files: config.FileLimits{
			MaxByteSize: 1024,
			Count:       3,
			Types:       []string{"text/plain"},
			QuotaBytes:  4096,
			PageMaxSize: 20,
		},
		Images: config.ImageLimits{MaxByteSize: 512},
	}
}

func TestBuildDevWithoutDatabaseUsesMemoryIndex(t *testing.T) {
	gin.SetMode(gin.TestMode)
	app, err := Build(context.Background(), devConfig(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	defer app.Close()

	if app.DB != nil {
		t.Fatalf("expected no database")
	}
	if _, ok := app.FilesRepo.(*files.MemoryRepo); !ok {
		t.Fatalf("expected memory repo, got %T", app.FilesRepo)
	}
	if got := app.FilesService.Policy().MaxFileCount; got != 3 {
		t.Fatalf("expected policy count 3, got %d", got)
	}
	if got := app.ImagesService.MaxByteSize; got != 512 {
		t.Fatalf("expected image max 512, got %d", got)
	}

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", w.Code)
	}
}

func TestBuildProductionRequiresDatabase(t *testing.T) {
	cfg := devConfig(t)
	cfg.Env = "production"
	if _, err := Build(context.Background(), cfg); err == nil {
		t.Fatalf("expected error without DATABASE_URL in production")
	}
}

func TestBuildStoreRejectsUnknownType(t *testing.T) {
	cfg := devConfig(t)
	cfg.ObjectStoreType = "ftp"
	if _, err := buildStore(context.Background(), cfg); err == nil {
		t.Fatalf("expected error for unknown store type")
	}
}

func TestIsDevLike(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"dev", true},
		{" Local ", true},
		{"staging", false},
		{"production", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.env, func(t *testing.T) {
			if got := isDevLike(tt.env); got != tt.want {
				t.Fatalf("isDevLike(%q) = %v, want %v", tt.env, got, tt.want)
			}
		})
	}
}
