// Package api содержит HTTP-клиент для взаимодействия с сервером пользователей.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (POST/GET/PUT/DELETE).
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *Error, собранный
//     из тела {"message","error"} (если тело не JSON — из его текста или res.Status).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sharedModels "github.com/IvanChernomyrdin/go-users-api/internal/shared/models"
)

// DefaultTimeout — таймаут http.Client по умолчанию.
const DefaultTimeout = 10 * time.Second

// Client реализует HTTP-клиент для общения с сервером.
//
// Поля:
//   - baseURL: базовый адрес сервера без завершающего слэша.
//   - http: настроенный http.Client (таймаут).
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// Параметры:
//   - baseURL: базовый адрес сервера (например: "http://127.0.0.1:3000").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Error — ошибка, которую вернул сервер (не 2xx).
//
// Error() печатается как "<message>: <error>", чтобы CLI показывал
// и что не удалось, и почему.
type Error struct {
	StatusCode int
	Message    string
	Err        string
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != "":
		return e.Message + ": " + e.Err
	case e.Message != "":
		return e.Message
	case e.Err != "":
		return e.Err
	default:
		return http.StatusText(e.StatusCode)
	}
}

// IsNotFound сообщает, что сервер ответил 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// readAPIErrorBody читает тело ответа сервера и собирает *Error.
//
// Поведение:
//   - если тело — JSON вида {"message","error"}, берём поля оттуда;
//   - иначе в Message кладётся текст тела (trim пробелов);
//   - если тело пустое — используется res.Status.
func readAPIErrorBody(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	var body sharedModels.ErrorResponse
	if err := json.Unmarshal(raw, &body); err == nil && (body.Message != "" || body.Error != "") {
		return &Error{StatusCode: res.StatusCode, Message: body.Message, Err: body.Error}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = res.Status
	}
	return &Error{StatusCode: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует JSON из r в resp.
//
// Если resp == nil — функция ничего не делает. Пустое тело (io.EOF)
// не считается ошибкой.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// do отправляет запрос и обрабатывает ответ.
//
// Обработка ответа:
//   - 204 No Content: успех без попытки декодирования тела;
//   - прочие 2xx: декодирует JSON в resp (если resp != nil);
//   - не 2xx: возвращает *Error.
func (c *Client) do(ctx context.Context, method, path string, req, resp any) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIErrorBody(res)
	}

	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

// PostJSON выполняет POST-запрос, сериализуя req в JSON.
// Если req == nil, тело не отправляется.
func (c *Client) PostJSON(ctx context.Context, path string, req, resp any) error {
	return c.do(ctx, http.MethodPost, path, req, resp)
}

// GetJSON выполняет GET-запрос и декодирует JSON-ответ в resp.
func (c *Client) GetJSON(ctx context.Context, path string, resp any) error {
	return c.do(ctx, http.MethodGet, path, nil, resp)
}

// PutJSON выполняет PUT-запрос, сериализуя req в JSON.
func (c *Client) PutJSON(ctx context.Context, path string, req, resp any) error {
	return c.do(ctx, http.MethodPut, path, req, resp)
}

// DeleteJSON выполняет DELETE-запрос и декодирует JSON-ответ в resp.
func (c *Client) DeleteJSON(ctx context.Context, path string, resp any) error {
	return c.do(ctx, http.MethodDelete, path, nil, resp)
}

// GetText выполняет GET-запрос и возвращает тело ответа как строку.
// Используется для health-check, который отвечает text/plain.
func (c *Client) GetText(ctx context.Context, path string) (string, error) {
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return "", err
	}

	res, err := c.http.Do(r)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", readAPIErrorBody(res)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(raw), nil
}
