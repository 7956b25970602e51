package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IvanChernomyrdin/go-users-api/internal/agent/api"
	sharedModels "github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
	"github.com/IvanChernomyrdin/go-users-api/internal/shared/utils"
)

func TestClient_PostJSON_SetsHeaders_AndDecodesResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/x", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected method POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("expected Content-Type application/json, got %q", ct)
		}
		if acc := r.Header.Get("Accept"); acc != "application/json" {
			t.Fatalf("expected Accept application/json, got %q", acc)
		}

		var got map[string]any
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if got["a"] != float64(1) {
			t.Fatalf("expected a=1, got %#v", got["a"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL + "/")

	var resp map[string]any
	if err := c.PostJSON(context.Background(), "/x", map[string]any{"a": 1}, &resp); err != nil {
		t.Fatalf("PostJSON returned error: %v", err)
	}
	if resp["ok"] != true {
		t.Fatalf("expected ok=true, got %#v", resp["ok"])
	}
}

func TestClient_GetJSON_NoBody_NoContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			t.Fatalf("expected empty Content-Type, got %q", ct)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var resp map[string]any
	if err := api.NewClient(srv.URL).GetJSON(context.Background(), "/", &resp); err != nil {
		t.Fatalf("expected nil error on 204, got %v", err)
	}
	if resp != nil {
		t.Fatalf("expected resp untouched, got %#v", resp)
	}
}

func TestClient_ErrorResponse_MessageAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(sharedModels.ErrorResponse{
			Message: "Failed to create user",
			Error:   "email already exists",
		})
	}))
	defer srv.Close()

	err := api.NewClient(srv.URL).PostJSON(context.Background(), "/users", map[string]string{}, nil)
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "Failed to create user: email already exists" {
		t.Fatalf("unexpected error text: %q", err.Error())
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected *api.Error with 400, got %#v", err)
	}
}

func TestClient_ErrorResponse_PlainTextAndEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain text", "boom\n", "boom"},
		{"empty body", "", "502 Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := api.NewClient(srv.URL).DeleteJSON(context.Background(), "/users/1", nil)
			if err == nil || err.Error() != tt.want {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestClient_IsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"User not found","error":"not found"}`))
	}))
	defer srv.Close()

	_, err := api.NewClient(srv.URL).GetUser(context.Background(), "65a1b2c3d4e5f60718293a4b")
	if !api.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if api.IsNotFound(errors.New("other")) {
		t.Fatalf("plain error must not be not found")
	}
}

func TestClient_Users_Endpoints(t *testing.T) {
	const id = "65a1b2c3d4e5f60718293a4b"

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("User REST API is running"))
	})
	mux.HandleFunc("POST /users", func(w http.ResponseWriter, r *http.Request) {
		var req sharedModels.CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(sharedModels.User{ID: id, Name: req.Name, Email: req.Email, Age: req.Age})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sharedModels.MessageResponse{Message: "User is", ID: r.PathValue("id")})
	})
	mux.HandleFunc("PUT /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode: %v", err)
		}
		// неизменяемые поля не отправляются
		if _, ok := raw["email"]; ok {
			t.Fatalf("email must not be sent, got %#v", raw)
		}
		_ = json.NewEncoder(w).Encode(sharedModels.User{ID: r.PathValue("id"), Name: raw["name"].(string)})
	})
	mux.HandleFunc("DELETE /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(sharedModels.MessageResponse{Message: "User deleted", ID: r.PathValue("id")})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := api.NewClient(srv.URL)
	ctx := context.Background()

	health, err := c.Health(ctx)
	if err != nil || health != "User REST API is running" {
		t.Fatalf("health: %q, %v", health, err)
	}

	u, err := c.CreateUser(ctx, sharedModels.CreateUserRequest{Name: "Al", Email: "a@x.com", Age: utils.Ptr(30)})
	if err != nil || u.ID != id || *u.Age != 30 {
		t.Fatalf("create: %+v, %v", u, err)
	}

	users, err := c.ListUsers(ctx)
	if err != nil || users == nil || len(users) != 0 {
		t.Fatalf("list: %#v, %v", users, err)
	}

	got, err := c.GetUser(ctx, id)
	if err != nil || got.ID != id || got.Message != "User is" {
		t.Fatalf("get: %+v, %v", got, err)
	}

	upd, err := c.UpdateUser(ctx, id, sharedModels.UpdateUserRequest{Name: utils.Ptr("Alice")})
	if err != nil || upd.Name != "Alice" {
		t.Fatalf("update: %+v, %v", upd, err)
	}

	del, err := c.DeleteUser(ctx, id)
	if err != nil || del.ID != id {
		t.Fatalf("delete: %+v, %v", del, err)
	}
}
