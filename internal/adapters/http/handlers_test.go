package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/adapters/ical"
	"github.com/daybook/core/internal/adapters/recognition"
	"github.com/daybook/core/internal/adapters/repository"
	"github.com/daybook/core/internal/application/services"
	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/domain/layout"
	"github.com/daybook/core/internal/infrastructure/config"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

type fixture struct {
	echo     *echo.Echo
	auth     *AuthHandler
	events   *EventHandler
	calendar *CalendarHandler
	shopping *ShoppingHandler
	scan     *ScanHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.Nop()

	eventRepo := repository.NewEventRepository()
	shoppingRepo := repository.NewShoppingRepository()

	authService := services.NewAuthService(repository.NewUserRepository(), config.JWTConfig{
		Secret:           "test-secret-key-for-tests-only",
		ExpiresIn:        time.Hour,
		RefreshExpiresIn: 24 * time.Hour,
		Issuer:           "daybook-api",
	}, log)
	eventService := services.NewEventService(eventRepo, ical.NewExporter("Daybook", "test"), layout.DefaultGridParams(), log)
	calendarService := services.NewCalendarService(eventRepo, layout.DefaultGridParams(), log)
	shoppingService := services.NewShoppingService(shoppingRepo, log)
	scannerService := services.NewScannerService(recognition.NewMockRecognizer(), eventService, shoppingService, log)

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	return &fixture{
		echo:     e,
		auth:     NewAuthHandler(authService, log),
		events:   NewEventHandler(eventService, log),
		calendar: NewCalendarHandler(calendarService, log),
		shopping: NewShoppingHandler(shoppingService, log),
		scan:     NewScanHandler(scannerService, log),
	}
}

func (f *fixture) request(t *testing.T, method, target, body string, handler echo.HandlerFunc, pathParams ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)
	for i := 0; i+1 < len(pathParams); i += 2 {
		c.SetParamNames(pathParams[i])
		c.SetParamValues(pathParams[i+1])
	}
	if err := handler(c); err != nil {
		f.echo.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthEndpoints(t *testing.T) {
	f := newFixture(t)

	body := `{"email":"sam@example.com","name":"Sam","password":"correct horse battery"}`
	rec := f.request(t, http.MethodPost, "/api/v1/auth/register", body, f.auth.Register)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	var reg ports.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &reg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reg.AccessToken == "" || reg.RefreshToken == "" {
		t.Fatalf("incomplete token response: %+v", reg)
	}

	rec = f.request(t, http.MethodPost, "/api/v1/auth/refresh",
		`{"refresh_token":"`+reg.RefreshToken+`"}`, f.auth.Refresh)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %s", rec.Code, rec.Body.String())
	}

	var refreshed ports.AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// The first refresh token was spent by the rotation above.
	rec = f.request(t, http.MethodPost, "/api/v1/auth/refresh",
		`{"refresh_token":"`+reg.RefreshToken+`"}`, f.auth.Refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reused refresh status = %d, want 401", rec.Code)
	}

	rec = f.request(t, http.MethodPost, "/api/v1/auth/logout",
		`{"refresh_token":"`+refreshed.RefreshToken+`"}`, f.auth.Logout)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = f.request(t, http.MethodPost, "/api/v1/auth/refresh",
		`{"refresh_token":"`+refreshed.RefreshToken+`"}`, f.auth.Refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked refresh status = %d, want 401", rec.Code)
	}
}

func TestCreateAndGetEvent(t *testing.T) {
	f := newFixture(t)

	body := `{"title":"Team Meeting","start_date":"2025-04-03T10:00:00Z","end_date":"2025-04-03T11:00:00Z"}`
	rec := f.request(t, http.MethodPost, "/api/v1/events", body, f.events.CreateEvent)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	var created entities.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = f.request(t, http.MethodGet, "/api/v1/events/"+created.ID.String(), "", f.events.GetEvent, "id", created.ID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
}

func TestCreateEventRejectsMissingTitle(t *testing.T) {
	f := newFixture(t)

	body := `{"start_date":"2025-04-03T10:00:00Z","end_date":"2025-04-03T11:00:00Z"}`
	rec := f.request(t, http.MethodPost, "/api/v1/events", body, f.events.CreateEvent)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetEventNotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodGet, "/api/v1/events/x", "", f.events.GetEvent, "id", "not-a-uuid")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d, want 400", rec.Code)
	}

	id := "2c9e5a1e-95a8-4f28-9c4f-111111111111"
	rec = f.request(t, http.MethodGet, "/api/v1/events/"+id, "", f.events.GetEvent, "id", id)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing event status = %d, want 404", rec.Code)
	}
}

func TestRescheduleEndpoint(t *testing.T) {
	f := newFixture(t)

	body := `{"title":"Meeting","start_date":"2025-04-03T14:00:00Z","end_date":"2025-04-03T15:00:00Z"}`
	rec := f.request(t, http.MethodPost, "/api/v1/events", body, f.events.CreateEvent)
	var created entities.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = f.request(t, http.MethodPatch, "/api/v1/events/"+created.ID.String()+"/reschedule",
		`{"delta_y":160,"hour_height":80}`, f.events.RescheduleEvent, "id", created.ID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("reschedule status = %d, body %s", rec.Code, rec.Body.String())
	}

	var moved entities.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &moved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !moved.StartDate.Equal(time.Date(2025, 4, 3, 16, 0, 0, 0, time.UTC)) {
		t.Errorf("StartDate = %v, want 16:00", moved.StartDate)
	}
}

func TestDayGridEndpoint(t *testing.T) {
	f := newFixture(t)

	body := `{"title":"Dinner","start_date":"2025-04-03T19:00:00Z","end_date":"2025-04-03T20:00:00Z"}`
	if rec := f.request(t, http.MethodPost, "/api/v1/events", body, f.events.CreateEvent); rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}

	rec := f.request(t, http.MethodGet, "/api/v1/calendar/day?date=2025-04-03&start=8&end=18", "", f.calendar.DayGrid)
	if rec.Code != http.StatusOK {
		t.Fatalf("day grid status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp ports.DayGridResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.HiddenCount != 1 {
		t.Errorf("HiddenCount = %d, want 1", resp.HiddenCount)
	}
	if !strings.Contains(resp.Warning, "outside the selected time range") {
		t.Errorf("Warning = %q", resp.Warning)
	}

	rec = f.request(t, http.MethodGet, "/api/v1/calendar/day", "", f.calendar.DayGrid)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing date status = %d, want 400", rec.Code)
	}
}

func TestApplyWindowEndpoint(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/calendar/window",
		`{"date":"2025-04-03T00:00:00Z","preset":"evening"}`, f.calendar.ApplyWindow)
	if rec.Code != http.StatusOK {
		t.Fatalf("window status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp ports.WindowResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Window.Start != 17 || resp.Window.End != 23 {
		t.Errorf("Window = %+v, want evening hours", resp.Window)
	}

	rec = f.request(t, http.MethodPost, "/api/v1/calendar/window",
		`{"date":"2025-04-03T00:00:00Z","preset":"nap-time"}`, f.calendar.ApplyWindow)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown preset status = %d, want 400", rec.Code)
	}
}

func TestShoppingLifecycleEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/shopping", `{"name":"Milk","category":"Dairy"}`, f.shopping.CreateItem)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var item entities.ShoppingItem
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = f.request(t, http.MethodPatch, "/api/v1/shopping/"+item.ID.String()+"/toggle", "", f.shopping.TogglePurchased, "id", item.ID.String())
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d", rec.Code)
	}
	var toggled entities.ShoppingItem
	if err := json.Unmarshal(rec.Body.Bytes(), &toggled); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !toggled.Completed {
		t.Error("toggle did not complete the item")
	}

	rec = f.request(t, http.MethodGet, "/api/v1/shopping?mode=purchased", "", f.shopping.ListItems)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var page ports.PaginatedResponse[*entities.ShoppingItem]
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("purchased total = %d, want 1", page.Total)
	}
}

func TestScanEndpoints(t *testing.T) {
	f := newFixture(t)

	rec := f.request(t, http.MethodPost, "/api/v1/scan",
		`{"image":"`+base64Bytes("receipt photo")+`","hint":"receipt"}`, f.scan.Scan)
	if rec.Code != http.StatusOK {
		t.Fatalf("scan status = %d, body %s", rec.Code, rec.Body.String())
	}

	var scanResp ports.ScanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &scanResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(scanResp.Drafts.ShoppingItems) == 0 {
		t.Fatal("receipt scan drafted no items")
	}

	drafts, err := json.Marshal(ports.AcceptScanRequest{ShoppingItems: scanResp.Drafts.ShoppingItems})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	rec = f.request(t, http.MethodPost, "/api/v1/scan/accept", string(drafts), f.scan.AcceptScan)
	if rec.Code != http.StatusCreated {
		t.Fatalf("accept status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = f.request(t, http.MethodPost, "/api/v1/scan/accept", `{}`, f.scan.AcceptScan)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty accept status = %d, want 400", rec.Code)
	}
}

func base64Bytes(s string) string {
	data, _ := json.Marshal([]byte(s))
	return strings.Trim(string(data), `"`)
}
