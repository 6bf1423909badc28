// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/olegiv/omarket-go/internal/ai"
	"github.com/olegiv/omarket-go/internal/model"
)

func TestStatus(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/status", nil)
	wantStatus(t, resp, http.StatusOK)

	var status StatusResponse
	decodeData(t, resp, &status)
	if status.Status != "ok" {
		t.Errorf("status = %q, want ok", status.Status)
	}
	if status.Version != "test" {
		t.Errorf("version = %q, want test", status.Version)
	}
	if status.AI {
		t.Error("ai_enabled = true without API key")
	}
}

func TestLoginLogoutMe(t *testing.T) {
	ts := newTestServer(t)

	// Anonymous /me is unauthorized.
	resp := ts.do(t, http.MethodGet, "/api/auth/me", nil)
	wantStatus(t, resp, http.StatusUnauthorized)
	drain(resp)

	resp = ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "buyer@test.com"})
	wantStatus(t, resp, http.StatusOK)
	var user model.User
	decodeData(t, resp, &user)
	if user.Name != "buyer" {
		t.Errorf("Name = %q, want buyer", user.Name)
	}
	if user.IsAdmin {
		t.Error("IsAdmin = true for non-admin email")
	}

	resp = ts.do(t, http.MethodGet, "/api/auth/me", nil)
	wantStatus(t, resp, http.StatusOK)
	var me model.User
	decodeData(t, resp, &me)
	if me.ID != user.ID {
		t.Errorf("me.ID = %q, want %q", me.ID, user.ID)
	}

	resp = ts.do(t, http.MethodPost, "/api/auth/logout", nil)
	wantStatus(t, resp, http.StatusOK)
	drain(resp)

	resp = ts.do(t, http.MethodGet, "/api/auth/me", nil)
	wantStatus(t, resp, http.StatusUnauthorized)
	drain(resp)

	// Logging out again is fine.
	resp = ts.do(t, http.MethodPost, "/api/auth/logout", nil)
	wantStatus(t, resp, http.StatusOK)
	drain(resp)
}

func TestLoginEmptyEmail(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "   "})
	wantStatus(t, resp, http.StatusUnprocessableEntity)
	drain(resp)
}

func TestLoginAdmin(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "ADMIN@example.com"})
	wantStatus(t, resp, http.StatusOK)
	var user model.User
	decodeData(t, resp, &user)
	if !user.IsAdmin {
		t.Error("IsAdmin = false for admin email (case-insensitive match expected)")
	}
}

func TestProjectCRUD(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, testAdminEmail)

	// Create with defaults.
	resp := ts.do(t, http.MethodPost, "/api/admin/projects", map[string]any{})
	wantStatus(t, resp, http.StatusCreated)
	var created model.Project
	decodeData(t, resp, &created)
	if created.Name != model.DefaultProjectName {
		t.Errorf("Name = %q, want default", created.Name)
	}
	if created.Type != model.ProjectTypePython {
		t.Errorf("Type = %q, want PYTHON", created.Type)
	}

	// Invalid type is rejected.
	resp = ts.do(t, http.MethodPost, "/api/admin/projects", map[string]any{"type": "RUBY"})
	wantStatus(t, resp, http.StatusUnprocessableEntity)
	drain(resp)

	// Update.
	created.Name = "CSV Wizard"
	created.Price = 19.99
	resp = ts.do(t, http.MethodPut, "/api/admin/projects/"+created.ID, created)
	wantStatus(t, resp, http.StatusOK)
	var updated model.Project
	decodeData(t, resp, &updated)
	if updated.Name != "CSV Wizard" || updated.Slug != "csv-wizard" {
		t.Errorf("updated = %+v, want renamed with fresh slug", updated)
	}

	// Update of unknown id.
	resp = ts.do(t, http.MethodPut, "/api/admin/projects/ghost", created)
	wantStatus(t, resp, http.StatusNotFound)
	drain(resp)

	// Delete.
	resp = ts.do(t, http.MethodDelete, "/api/admin/projects/"+created.ID, nil)
	wantStatus(t, resp, http.StatusOK)
	drain(resp)

	resp = ts.do(t, http.MethodGet, "/api/projects/"+created.ID, nil)
	wantStatus(t, resp, http.StatusNotFound)
	drain(resp)
}

func TestListProjectsFilter(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	ts.eng.AddProject(ctx, model.ProjectDraft{Name: "Script", Type: model.ProjectTypePython})
	ts.eng.AddProject(ctx, model.ProjectDraft{Name: "Template", Type: model.ProjectTypeHTML})

	resp := ts.do(t, http.MethodGet, "/api/projects", nil)
	wantStatus(t, resp, http.StatusOK)
	var all []model.Project
	decodeData(t, resp, &all)
	if len(all) != 2 {
		t.Fatalf("len(projects) = %d, want 2", len(all))
	}

	resp = ts.do(t, http.MethodGet, "/api/projects?type=HTML", nil)
	wantStatus(t, resp, http.StatusOK)
	var html []model.Project
	decodeData(t, resp, &html)
	if len(html) != 1 || html[0].Name != "Template" {
		t.Errorf("filtered = %+v, want just Template", html)
	}

	resp = ts.do(t, http.MethodGet, "/api/projects?type=RUBY", nil)
	wantStatus(t, resp, http.StatusBadRequest)
	drain(resp)
}

func TestGetProjectDetail(t *testing.T) {
	ts := newTestServer(t)

	p := ts.eng.AddProject(context.Background(), model.ProjectDraft{
		Name:            "Scraper",
		Price:           100,
		Description:     "Scrapes the web",
		LongDescription: "## Features\n\nFast and **reliable**.",
	})

	cfg := ts.eng.Config()
	cfg.SaleActive = true
	cfg.DiscountPercent = 10
	ts.eng.UpdateConfig(context.Background(), cfg)

	resp := ts.do(t, http.MethodGet, "/api/projects/"+p.ID, nil)
	wantStatus(t, resp, http.StatusOK)
	var detail ProjectDetail
	decodeData(t, resp, &detail)

	if detail.EffectivePrice != 90 {
		t.Errorf("EffectivePrice = %v, want 90", detail.EffectivePrice)
	}
	if !strings.Contains(detail.LongDescriptionHTML, "<strong>reliable</strong>") {
		t.Errorf("LongDescriptionHTML = %q, want rendered markdown", detail.LongDescriptionHTML)
	}
	if detail.Pitch != ai.FallbackPitch {
		t.Errorf("Pitch = %q, want fallback (AI disabled)", detail.Pitch)
	}
}

func TestPurchaseFlow(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	p := ts.eng.AddProject(ctx, model.ProjectDraft{Name: "Scraper", Price: 49.99})

	// Purchasing anonymously is unauthorized.
	resp := ts.do(t, http.MethodPost, "/api/projects/"+p.ID+"/purchase", nil)
	wantStatus(t, resp, http.StatusUnauthorized)
	drain(resp)

	ts.login(t, "buyer@test.com")

	resp = ts.do(t, http.MethodPost, "/api/projects/"+p.ID+"/purchase", nil)
	wantStatus(t, resp, http.StatusCreated)
	var pr PurchaseResponse
	decodeData(t, resp, &pr)
	if pr.Purchase.Status != model.PurchaseStatusPending {
		t.Errorf("Status = %q, want PENDING", pr.Purchase.Status)
	}
	if pr.Purchase.PriceAtPurchase != 49.99 {
		t.Errorf("PriceAtPurchase = %v, want 49.99", pr.Purchase.PriceAtPurchase)
	}
	if pr.Notification.Recipient != testAdminEmail {
		t.Errorf("Recipient = %q, want admin", pr.Notification.Recipient)
	}

	// Unknown project.
	resp = ts.do(t, http.MethodPost, "/api/projects/ghost/purchase", nil)
	wantStatus(t, resp, http.StatusNotFound)
	drain(resp)

	resp = ts.do(t, http.MethodGet, "/api/orders", nil)
	wantStatus(t, resp, http.StatusOK)
	var orders []model.Purchase
	decodeData(t, resp, &orders)
	if len(orders) != 1 || orders[0].ID != pr.Purchase.ID {
		t.Errorf("orders = %+v, want the one purchase", orders)
	}
}

func TestAdminProtection(t *testing.T) {
	ts := newTestServer(t)

	// Anonymous.
	resp := ts.do(t, http.MethodGet, "/api/admin/orders", nil)
	wantStatus(t, resp, http.StatusUnauthorized)
	drain(resp)

	// Signed in but not admin.
	ts.login(t, "buyer@test.com")
	resp = ts.do(t, http.MethodGet, "/api/admin/orders", nil)
	wantStatus(t, resp, http.StatusForbidden)
	drain(resp)

	// Admin.
	ts.login(t, testAdminEmail)
	resp = ts.do(t, http.MethodGet, "/api/admin/orders", nil)
	wantStatus(t, resp, http.StatusOK)
	drain(resp)
}

func TestUpdateOrderStatus(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	p := ts.eng.AddProject(ctx, model.ProjectDraft{Name: "Scraper", Price: 50})
	ts.login(t, testAdminEmail)

	resp := ts.do(t, http.MethodPost, "/api/projects/"+p.ID+"/purchase", nil)
	wantStatus(t, resp, http.StatusCreated)
	var pr PurchaseResponse
	decodeData(t, resp, &pr)

	resp = ts.do(t, http.MethodPut, "/api/admin/orders/"+pr.Purchase.ID+"/status",
		map[string]string{"status": model.PurchaseStatusCompleted})
	wantStatus(t, resp, http.StatusOK)
	drain(resp)

	if got := ts.eng.Purchases()[0].Status; got != model.PurchaseStatusCompleted {
		t.Errorf("Status = %q, want COMPLETED", got)
	}

	// Unknown status.
	resp = ts.do(t, http.MethodPut, "/api/admin/orders/"+pr.Purchase.ID+"/status",
		map[string]string{"status": "SHIPPED"})
	wantStatus(t, resp, http.StatusUnprocessableEntity)
	drain(resp)

	// Unknown order.
	resp = ts.do(t, http.MethodPut, "/api/admin/orders/ghost/status",
		map[string]string{"status": model.PurchaseStatusDeclined})
	wantStatus(t, resp, http.StatusNotFound)
	drain(resp)
}

func TestNotificationsFlow(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	p := ts.eng.AddProject(ctx, model.ProjectDraft{Name: "Scraper", Price: 50})
	ts.login(t, testAdminEmail)

	resp := ts.do(t, http.MethodPost, "/api/projects/"+p.ID+"/purchase", nil)
	wantStatus(t, resp, http.StatusCreated)
	var pr PurchaseResponse
	decodeData(t, resp, &pr)

	resp = ts.do(t, http.MethodGet, "/api/admin/notifications", nil)
	wantStatus(t, resp, http.StatusOK)
	var inbox struct {
		Notifications []model.Notification `json:"notifications"`
		Unread        int                  `json:"unread"`
	}
	decodeData(t, resp, &inbox)
	if len(inbox.Notifications) != 1 || inbox.Unread != 1 {
		t.Fatalf("inbox = %+v, want one unread notification", inbox)
	}

	resp = ts.do(t, http.MethodPost, "/api/admin/notifications/"+pr.Notification.ID+"/read", nil)
	wantStatus(t, resp, http.StatusOK)
	var readResp struct {
		Unread int `json:"unread"`
	}
	decodeData(t, resp, &readResp)
	if readResp.Unread != 0 {
		t.Errorf("unread = %d, want 0", readResp.Unread)
	}

	resp = ts.do(t, http.MethodDelete, "/api/admin/notifications", nil)
	wantStatus(t, resp, http.StatusOK)
	drain(resp)
	if got := len(ts.eng.Notifications()); got != 0 {
		t.Errorf("notifications after clear = %d, want 0", got)
	}
}

func TestConfigEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/config", nil)
	wantStatus(t, resp, http.StatusOK)
	var cfg model.MarketplaceConfig
	decodeData(t, resp, &cfg)
	if cfg.ContactEmail != testAdminEmail {
		t.Errorf("ContactEmail = %q, want admin", cfg.ContactEmail)
	}

	ts.login(t, testAdminEmail)
	cfg.SaleActive = true
	cfg.DiscountPercent = 25
	cfg.HeroTitle = "Summer Sale"
	resp = ts.do(t, http.MethodPut, "/api/admin/config", cfg)
	wantStatus(t, resp, http.StatusOK)
	drain(resp)

	resp = ts.do(t, http.MethodGet, "/api/config", nil)
	wantStatus(t, resp, http.StatusOK)
	var got model.MarketplaceConfig
	decodeData(t, resp, &got)
	if !got.SaleActive || got.DiscountPercent != 25 || got.HeroTitle != "Summer Sale" {
		t.Errorf("config = %+v, want updated values", got)
	}
}

func TestSuggestPriceFallback(t *testing.T) {
	ts := newTestServer(t)
	ts.login(t, testAdminEmail)

	resp := ts.do(t, http.MethodPost, "/api/admin/projects/suggest-price",
		map[string]any{"name": "Scraper", "features": []string{"Fast", "Reliable"}})
	wantStatus(t, resp, http.StatusOK)
	var suggestion struct {
		Price float64 `json:"price"`
	}
	decodeData(t, resp, &suggestion)
	if suggestion.Price != ai.FallbackPrice {
		t.Errorf("price = %v, want fallback %v", suggestion.Price, ai.FallbackPrice)
	}
}

func TestStats(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	p := ts.eng.AddProject(ctx, model.ProjectDraft{Name: "Scraper", Price: 50})
	ts.login(t, testAdminEmail)

	resp := ts.do(t, http.MethodPost, "/api/projects/"+p.ID+"/purchase", nil)
	wantStatus(t, resp, http.StatusCreated)
	var pr PurchaseResponse
	decodeData(t, resp, &pr)
	ts.eng.UpdatePurchaseStatus(ctx, pr.Purchase.ID, model.PurchaseStatusCompleted)

	resp = ts.do(t, http.MethodGet, "/api/admin/stats", nil)
	wantStatus(t, resp, http.StatusOK)
	var stats StatsResponse
	decodeData(t, resp, &stats)
	if stats.Projects != 1 || stats.Orders != 1 {
		t.Errorf("stats = %+v, want 1 project and 1 order", stats)
	}
	if stats.GrossRevenue != 50 {
		t.Errorf("GrossRevenue = %v, want 50", stats.GrossRevenue)
	}
}

func TestUploadProjectImage(t *testing.T) {
	ts := newTestServer(t)

	p := ts.eng.AddProject(context.Background(), model.ProjectDraft{Name: "Scraper"})
	ts.login(t, testAdminEmail)

	// Build a multipart body with a small JPEG.
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 64, A: 255})
		}
	}
	var imgBuf bytes.Buffer
	if err := jpeg.Encode(&imgBuf, img, nil); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "cover.jpg")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write(imgBuf.Bytes()); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	_ = mw.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/admin/projects/"+p.ID+"/image", &body)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := ts.client.Do(req)
	if err != nil {
		t.Fatalf("uploading image: %v", err)
	}
	wantStatus(t, resp, http.StatusOK)
	var upload struct {
		ImageURL string `json:"image_url"`
	}
	decodeData(t, resp, &upload)

	want := "/uploads/cards/" + p.ID + "/cover.jpg"
	if upload.ImageURL != want {
		t.Errorf("image_url = %q, want %q", upload.ImageURL, want)
	}

	updated, _ := ts.eng.ProjectByID(p.ID)
	if updated.ImageURL != want {
		t.Errorf("project ImageURL = %q, want %q", updated.ImageURL, want)
	}
}

func TestErrorEnvelope(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/projects/ghost", nil)
	wantStatus(t, resp, http.StatusNotFound)
	defer func() { _ = resp.Body.Close() }()

	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if errResp.Error.Code != "not_found" {
		t.Errorf("code = %q, want not_found", errResp.Error.Code)
	}
}
