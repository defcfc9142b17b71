package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainImage "imageresizer/internal/domain/image"
	domain "imageresizer/internal/domain/user"
	jwtSvc "imageresizer/internal/infrastructure/jwt"
	"imageresizer/internal/infrastructure/ratelimit"
	"imageresizer/internal/interface/api/rest/middleware"
)

const testSecret = "test-secret"

type FakeUserService struct {
	FindUserByIDFunc func(ctx context.Context, id domain.ID) (*domain.User, error)
	FindByEmailFunc  func(ctx context.Context, email string) (*domain.User, error)
	RegisterFunc     func(ctx context.Context, email, password, name string) (*domain.User, error)
}

func (f *FakeUserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.FindByEmailFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindByEmailFunc(ctx, email)
}
func (f *FakeUserService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if f.RegisterFunc == nil {
		return nil, errors.New("not used")
	}
	return f.RegisterFunc(ctx, email, password, name)
}

type fakeAuthService struct {
	GenerateTokenFunc func(u *domain.User, password string) (string, error)
	IssueTokenFunc    func(u *domain.User) (string, error)
}

func (f *fakeAuthService) GenerateToken(u *domain.User, password string) (string, error) {
	return f.GenerateTokenFunc(u, password)
}

func (f *fakeAuthService) IssueToken(u *domain.User) (string, error) {
	return f.IssueTokenFunc(u)
}

type FakeImageService struct {
	ReceiveFunc func(ctx context.Context, fh *multipart.FileHeader) (*domainImage.StoredImage, error)
	UploadFunc  func(ctx context.Context, userID string, fh *multipart.FileHeader) (*domainImage.Upload, error)
	ResizeFunc  func(ctx context.Context, userID string, fh *multipart.FileHeader, opts domainImage.ResizeOptions) (*domainImage.Resized, error)
	DeleteFunc  func(ctx context.Context, userID, filename string) error
}

func (f *FakeImageService) Receive(ctx context.Context, fh *multipart.FileHeader) (*domainImage.StoredImage, error) {
	if f.ReceiveFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ReceiveFunc(ctx, fh)
}
func (f *FakeImageService) Upload(ctx context.Context, userID string, fh *multipart.FileHeader) (*domainImage.Upload, error) {
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, userID, fh)
}
func (f *FakeImageService) Resize(ctx context.Context, userID string, fh *multipart.FileHeader, opts domainImage.ResizeOptions) (*domainImage.Resized, error) {
	if f.ResizeFunc == nil {
		return nil, errors.New("not used")
	}
	return f.ResizeFunc(ctx, userID, fh, opts)
}
func (f *FakeImageService) Delete(ctx context.Context, userID, filename string) error {
	if f.DeleteFunc == nil {
		return errors.New("not used")
	}
	return f.DeleteFunc(ctx, userID, filename)
}

func newJWT() *jwtSvc.Service { return jwtSvc.New(testSecret, time.Hour) }

func bearer(t *testing.T, userID string) map[string]string {
	t.Helper()
	tok, err := newJWT().GenerateJWT(userID)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func noLimit(c *gin.Context) { c.Next() }

func memLimiter(name string, limit int, msg string) gin.HandlerFunc {
	l := ratelimit.New(ratelimit.NewMemory(time.Minute), ratelimit.Policy{
		Name:    name,
		Limit:   limit,
		Window:  15 * time.Minute,
		Message: msg,
	})
	return middleware.RateLimit(l, zap.NewNop(), nil)
}

func doPOST(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return doReq(t, r, http.MethodPost, path, body, nil)
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var b []byte
	switch v := body.(type) {
	case nil:
	case string:
		b = []byte(v)
	default:
		var err error
		b, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req, err := http.NewRequest(method, path, bytes.NewReader(b))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type filePart struct {
	filename    string
	contentType string
	data        []byte
}

func doMultipartReq(
	t *testing.T,
	r *gin.Engine,
	path string,
	file *filePart,
	fields map[string]string,
	headers map[string]string,
) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}
