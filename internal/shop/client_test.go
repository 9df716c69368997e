package shop

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"universal-shop/internal/models"
)

func newTestClient(ts *httptest.Server) *Client {
	return NewClient(ts.URL, 5*time.Second, zerolog.Nop())
}

func TestDashboard_DecodesAggregate(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/dashboard" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{
			"games":[{"id":1,"name":"Chess"}],
			"apps":[{"id":2,"name":"Notes"}],
			"last_viewed":{"id":3,"name":"Gold pack","price":500},
			"all_products":[{"id":3,"name":"Gold pack","price":500}]
		}`))
	}))
	defer ts.Close()

	dash, err := newTestClient(ts).Dashboard(context.Background(), "777")
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if gotAuth != "Bearer 777" {
		t.Errorf("expected bearer credential, got %q", gotAuth)
	}
	if len(dash.Games) != 1 || dash.Games[0].Name != "Chess" {
		t.Errorf("games not decoded: %+v", dash.Games)
	}
	if dash.LastViewed == nil || dash.LastViewed.ID != 3 {
		t.Errorf("last_viewed not decoded: %+v", dash.LastViewed)
	}
}

func TestDashboard_MissingFieldsDefaultToEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"games":[{"id":1,"name":"Chess"}]}`))
	}))
	defer ts.Close()

	dash, err := newTestClient(ts).Dashboard(context.Background(), "777")
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}

	if dash.Apps == nil || len(dash.Apps) != 0 {
		t.Errorf("missing apps should decode as empty, got %+v", dash.Apps)
	}
	if dash.AllProducts == nil || len(dash.AllProducts) != 0 {
		t.Errorf("missing all_products should decode as empty, got %+v", dash.AllProducts)
	}
	if dash.LastViewed != nil {
		t.Errorf("missing last_viewed should stay nil, got %+v", dash.LastViewed)
	}
	if len(dash.Games) != 1 {
		t.Errorf("present fields must still decode, got %+v", dash.Games)
	}
}

func TestTrackView_PostsToViewPath(t *testing.T) {
	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	if err := newTestClient(ts).TrackView(context.Background(), "777", 12); err != nil {
		t.Fatalf("TrackView failed: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/products/12/view" {
		t.Errorf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestDeleteViewHistory_UsesDelete(t *testing.T) {
	var gotMethod, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success":true}`))
	}))
	defer ts.Close()

	if err := newTestClient(ts).DeleteViewHistory(context.Background(), "777", 12); err != nil {
		t.Fatalf("DeleteViewHistory failed: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/view-history/12" {
		t.Errorf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestCreateOrder_ManualBranch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"order_id":10,
			"requires_manual_payment":true,
			"bank_details":{"bank_name":"Bank A","card_number":"1111","account_holder":"J Doe"}
		}`))
	}))
	defer ts.Close()

	result, err := newTestClient(ts).CreateOrder(context.Background(), "777", 3, models.PaymentMethodBankTransfer)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	manual, ok := result.(models.ManualPayment)
	if !ok {
		t.Fatalf("expected ManualPayment, got %T", result)
	}
	if manual.OrderID != 10 || manual.Bank.BankName != "Bank A" || manual.Bank.CardNumber != "1111" || manual.Bank.AccountHolder != "J Doe" {
		t.Errorf("manual branch not decoded: %+v", manual)
	}
}

func TestCreateOrder_AutomatedBranch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_id":11,"requires_manual_payment":false,"payment_url":"https://pay.example/x"}`))
	}))
	defer ts.Close()

	result, err := newTestClient(ts).CreateOrder(context.Background(), "777", 3, models.PaymentMethodTON)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	automated, ok := result.(models.AutomatedPayment)
	if !ok {
		t.Fatalf("expected AutomatedPayment, got %T", result)
	}
	if automated.PaymentURL != "https://pay.example/x" {
		t.Errorf("payment url not decoded: %+v", automated)
	}
}

func TestCreateOrder_ManualWithoutBankDetailsFails(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"order_id":12,"requires_manual_payment":true}`))
	}))
	defer ts.Close()

	if _, err := newTestClient(ts).CreateOrder(context.Background(), "777", 3, models.PaymentMethodBankTransfer); err == nil {
		t.Fatal("expected error for manual payment without bank details")
	}
}

func TestCreateOrder_BackendError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer ts.Close()

	if _, err := newTestClient(ts).CreateOrder(context.Background(), "777", 3, models.PaymentMethodTON); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestCreateProduct_SendsMultipart(t *testing.T) {
	var gotFields map[string]string
	var gotImage []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("expected multipart form: %v", err)
		}
		gotFields = map[string]string{}
		for name := range r.MultipartForm.Value {
			gotFields[name] = r.FormValue(name)
		}
		if file, _, err := r.FormFile("image"); err == nil {
			defer file.Close()
			buf := make([]byte, 8)
			n, _ := file.Read(buf)
			gotImage = buf[:n]
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":5}`))
	}))
	defer ts.Close()

	gameID := 7
	draft := models.ProductDraft{
		Name:         "Gold pack",
		Description:  "1000 coins",
		Price:        500,
		DeliveryData: "login:password",
		GameID:       &gameID,
	}
	if err := newTestClient(ts).CreateProduct(context.Background(), "777", draft, []byte("img-data"), "product.jpg"); err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if gotFields["name"] != "Gold pack" || gotFields["price"] != "500.00" || gotFields["delivery_data"] != "login:password" || gotFields["game_id"] != "7" {
		t.Errorf("fields not forwarded: %+v", gotFields)
	}
	if _, ok := gotFields["app_id"]; ok {
		t.Error("unset app_id must not be sent")
	}
	if string(gotImage) != "img-data" {
		t.Errorf("image not forwarded, got %q", gotImage)
	}
}

func TestCreateGame_PostsJSON(t *testing.T) {
	var gotPath, gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}))
	defer ts.Close()

	if err := newTestClient(ts).CreateGame(context.Background(), "777", models.GameDraft{Name: "Chess"}); err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}
	if gotPath != "/api/admin/games" || gotContentType != "application/json" {
		t.Errorf("unexpected request: %s %s", gotPath, gotContentType)
	}
}
