package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibescine/cinevibes/internal/domain"
	"github.com/vibescine/cinevibes/internal/storage"
)

// Both backends must satisfy the domain interface at compile time.
var (
	_ domain.PictureStore = (*storage.BucketStore)(nil)
	_ domain.PictureStore = (*storage.DiskStore)(nil)
)

func TestBucketStore_Save(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.URL.Path != "/storage/v1/object/profile-pics/profile_pics/user_1.png" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer service-key" {
			t.Errorf("unexpected authorization %q", got)
		}
		if got := r.Header.Get("apikey"); got != "service-key" {
			t.Errorf("unexpected apikey %q", got)
		}
		if got := r.Header.Get("x-upsert"); got != "true" {
			t.Errorf("expected x-upsert true, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "image/png" {
			t.Errorf("unexpected content type %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "png-bytes" {
			t.Errorf("unexpected body %q", body)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := storage.NewBucketStore(srv.URL, "service-key", "profile-pics")

	url, err := store.Save(context.Background(), "user_1.png", "image/png", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := srv.URL + "/storage/v1/object/public/profile-pics/profile_pics/user_1.png"
	if url != want {
		t.Fatalf("expected public url %q, got %q", want, url)
	}
}

func TestBucketStore_Save_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bucket not found", http.StatusNotFound)
	}))
	defer srv.Close()

	store := storage.NewBucketStore(srv.URL, "service-key", "profile-pics")

	if _, err := store.Save(context.Background(), "x.png", "image/png", []byte("x")); err == nil {
		t.Fatal("expected error for failed upload")
	}
}

func TestBucketStore_Delete(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		deleted = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := storage.NewBucketStore(srv.URL, "service-key", "profile-pics")

	ref := srv.URL + "/storage/v1/object/public/profile-pics/profile_pics/user_1.png"
	if err := store.Delete(context.Background(), ref); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted != "/storage/v1/object/profile-pics/profile_pics/user_1.png" {
		t.Fatalf("unexpected delete path %q", deleted)
	}
}

func TestBucketStore_Delete_MissingObjectIsFine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := storage.NewBucketStore(srv.URL, "service-key", "profile-pics")

	ref := srv.URL + "/storage/v1/object/public/profile-pics/profile_pics/gone.png"
	if err := store.Delete(context.Background(), ref); err != nil {
		t.Fatalf("expected 404 to be tolerated, got %v", err)
	}
}

func TestBucketStore_Delete_ForeignRef(t *testing.T) {
	store := storage.NewBucketStore("https://store.example.com", "service-key", "profile-pics")

	if err := store.Delete(context.Background(), "/uploads/profile_pics/local.png"); err == nil {
		t.Fatal("expected error for a reference outside the bucket")
	}
}
