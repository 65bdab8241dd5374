package main

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	mockUserID   = "mock-seller"
	mockUsername = "mockseller"

	identityPath  = "/commerce/identity/v1/user/"
	inventoryPath = "/sell/inventory/v1"
	mediaPath     = "/commerce/media/v1_beta/image"
	tradingPath   = "/ws/api.dll"
	analyticsPath = "/developer/analytics/v1_beta/user_rate_limit/"
)

type errorDetail struct {
	ErrorID     int    `json:"errorId"`
	Domain      string `json:"domain"`
	Category    string `json:"category"`
	Message     string `json:"message"`
	LongMessage string `json:"longMessage,omitempty"`
}

type offer struct {
	ID        string
	SKU       string
	Price     string
	Currency  string
	ListingID string
}

type fakeEbay struct {
	baseURL      string
	logger       *slog.Logger
	rejectPrefix string

	mu        sync.Mutex
	nextID    int
	locations map[string]json.RawMessage
	items     map[string]json.RawMessage
	offers    map[string]*offer
	images    map[string]string
	listed    []*offer
}

func newFakeEbay(baseURL string, logger *slog.Logger) *fakeEbay {
	return &fakeEbay{
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
		nextID:    110000000000,
		locations: make(map[string]json.RawMessage),
		items:     make(map[string]json.RawMessage),
		offers:    make(map[string]*offer),
		images:    make(map[string]string),
	}
}

func (f *fakeEbay) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", f.token)
	mux.HandleFunc("GET "+identityPath, f.bearer(f.user))
	mux.HandleFunc("GET "+inventoryPath+"/location", f.bearer(f.listLocations))
	mux.HandleFunc("POST "+inventoryPath+"/location/{key}", f.bearer(f.createLocation))
	mux.HandleFunc("PUT "+inventoryPath+"/inventory_item/{sku}", f.bearer(f.putItem))
	mux.HandleFunc("POST "+inventoryPath+"/offer", f.bearer(f.createOffer))
	mux.HandleFunc("POST "+inventoryPath+"/offer/{id}/publish", f.bearer(f.publishOffer))
	mux.HandleFunc("POST "+mediaPath+"/create_image_from_file", f.bearer(f.createImage))
	mux.HandleFunc("GET "+mediaPath+"/{id}", f.bearer(f.getImage))
	mux.HandleFunc("POST "+tradingPath, f.getMyeBaySelling)
	mux.HandleFunc("GET "+analyticsPath, f.bearer(f.rateLimits))
	return mux
}

func (f *fakeEbay) newID() string {
	f.nextID++
	return strconv.Itoa(f.nextID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func writeErrors(w http.ResponseWriter, status int, details ...errorDetail) {
	writeJSON(w, status, map[string]any{"errors": details})
}

// bearer rejects REST calls without a user token.
func (f *fakeEbay) bearer(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			writeErrors(w, http.StatusUnauthorized, errorDetail{
				ErrorID:  1001,
				Domain:   "OAuth",
				Category: "REQUEST",
				Message:  "Invalid access token",
			})
			return
		}
		next(w, r)
	}
}

func (f *fakeEbay) token(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := r.BasicAuth(); !ok {
		f.logger.Warn("token request missing Basic Auth header")
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":             "invalid_client",
			"error_description": "client authentication failed",
		})
		return
	}
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_request"})
		return
	}

	stamp := strconv.FormatInt(time.Now().UnixNano(), 36)
	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		if r.PostForm.Get("code") == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "invalid_grant",
				"error_description": "the provided authorization grant code is invalid",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":             "mock-access-" + stamp,
			"refresh_token":            "mock-refresh-" + stamp,
			"expires_in":               7200,
			"refresh_token_expires_in": 47304000,
			"token_type":               "User Access Token",
		})
		f.logger.Info("issued user token")
	case "refresh_token":
		if strings.HasPrefix(r.PostForm.Get("refresh_token"), "revoked") {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"error":             "invalid_grant",
				"error_description": "the provided authorization refresh token is invalid or was issued to another client",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "mock-access-" + stamp,
			"expires_in":   7200,
			"token_type":   "User Access Token",
		})
		f.logger.Info("refreshed user token")
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unsupported_grant_type"})
	}
}

func (f *fakeEbay) user(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"userId": mockUserID, "username": mockUsername})
}

func (f *fakeEbay) listLocations(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	locs := make([]json.RawMessage, 0, len(f.locations))
	for _, l := range f.locations {
		locs = append(locs, l)
	}
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"locations": locs, "total": len(locs), "next": ""})
}

func (f *fakeEbay) createLocation(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrors(w, http.StatusBadRequest, errorDetail{ErrorID: 2004, Category: "REQUEST", Message: "Invalid request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.locations[key]; ok {
		writeErrors(w, http.StatusConflict, errorDetail{
			ErrorID:  25803,
			Domain:   "API_INVENTORY",
			Category: "REQUEST",
			Message:  fmt.Sprintf("%s already exists.", key),
		})
		return
	}

	body["merchantLocationKey"] = key
	raw, _ := json.Marshal(body) //nolint:errcheck // decoded from JSON above
	f.locations[key] = raw
	w.WriteHeader(http.StatusNoContent)
	f.logger.Info("created location", "key", key)
}

func (f *fakeEbay) putItem(w http.ResponseWriter, r *http.Request) {
	sku := r.PathValue("sku")

	raw, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(raw) {
		writeErrors(w, http.StatusBadRequest, errorDetail{ErrorID: 2004, Category: "REQUEST", Message: "Invalid request"})
		return
	}

	f.mu.Lock()
	f.items[sku] = raw
	f.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
	f.logger.Info("stored inventory item", "sku", sku)
}

func (f *fakeEbay) createOffer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SKU string `json:"sku"`
		PricingSummary struct {
			Price struct {
				Value    string `json:"value"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"pricingSummary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrors(w, http.StatusBadRequest, errorDetail{ErrorID: 2004, Category: "REQUEST", Message: "Invalid request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.items[body.SKU]; !ok {
		writeErrors(w, http.StatusBadRequest, errorDetail{
			ErrorID:  25702,
			Domain:   "API_INVENTORY",
			Category: "REQUEST",
			Message:  fmt.Sprintf("The SKU %s is not available in the system.", body.SKU),
		})
		return
	}
	for _, o := range f.offers {
		if o.SKU == body.SKU {
			writeErrors(w, http.StatusBadRequest, errorDetail{
				ErrorID:  25002,
				Domain:   "API_INVENTORY",
				Category: "REQUEST",
				Message:  "Offer entity already exists.",
			})
			return
		}
	}

	o := &offer{
		ID:       f.newID(),
		SKU:      body.SKU,
		Price:    body.PricingSummary.Price.Value,
		Currency: body.PricingSummary.Price.Currency,
	}
	f.offers[o.ID] = o
	writeJSON(w, http.StatusCreated, map[string]string{"offerId": o.ID})
	f.logger.Info("created offer", "offer_id", o.ID, "sku", o.SKU)
}

func (f *fakeEbay) publishOffer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.offers[id]
	if !ok {
		writeErrors(w, http.StatusNotFound, errorDetail{
			ErrorID:  25713,
			Domain:   "API_INVENTORY",
			Category: "REQUEST",
			Message:  "This Offer is not available.",
		})
		return
	}
	if f.rejectPrefix != "" && strings.HasPrefix(o.SKU, f.rejectPrefix) {
		writeErrors(w, http.StatusBadRequest, errorDetail{
			ErrorID:     25007,
			Domain:      "API_INVENTORY",
			Category:    "REQUEST",
			Message:     "Please add at least one valid shipping service option to your listing.",
			LongMessage: "Please add at least one valid shipping service option to your listing.",
		})
		return
	}
	if o.ListingID == "" {
		o.ListingID = f.newID()
		f.listed = append(f.listed, o)
	}

	writeJSON(w, http.StatusOK, map[string]string{"listingId": o.ListingID})
	f.logger.Info("published offer", "offer_id", id, "listing_id", o.ListingID)
}

func (f *fakeEbay) createImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		writeErrors(w, http.StatusBadRequest, errorDetail{ErrorID: 190002, Domain: "API_MEDIA", Message: "The image file is missing."})
		return
	}
	defer file.Close()

	f.mu.Lock()
	id := f.newID()
	f.images[id] = fmt.Sprintf("https://i.ebayimg.mock/images/g/%s/%s", id, header.Filename)
	f.mu.Unlock()

	w.Header().Set("Location", f.baseURL+mediaPath+"/"+id)
	w.WriteHeader(http.StatusCreated)
	f.logger.Info("stored image", "id", id, "filename", header.Filename)
}

func (f *fakeEbay) getImage(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	u, ok := f.images[r.PathValue("id")]
	f.mu.Unlock()

	if !ok {
		writeErrors(w, http.StatusNotFound, errorDetail{ErrorID: 190003, Domain: "API_MEDIA", Message: "The image was not found."})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"imageUrl":       u,
		"expirationDate": time.Now().AddDate(0, 0, 30).UTC().Format(time.RFC3339),
	})
}

type sellingRequest struct {
	ActiveList struct {
		Pagination struct {
			EntriesPerPage int `xml:"EntriesPerPage"`
			PageNumber     int `xml:"PageNumber"`
		} `xml:"Pagination"`
	} `xml:"ActiveList"`
}

type sellingItem struct {
	ItemID        string        `xml:"ItemID"`
	SKU           string        `xml:"SKU"`
	WatchCount    int           `xml:"WatchCount"`
	HitCount      int           `xml:"HitCount"`
	TimeLeft      string        `xml:"TimeLeft"`
	SellingStatus sellingStatus `xml:"SellingStatus"`
}

type sellingStatus struct {
	BidCount     int        `xml:"BidCount"`
	CurrentPrice amountType `xml:"CurrentPrice"`
}

type amountType struct {
	Value      string `xml:",chardata"`
	CurrencyID string `xml:"currencyID,attr"`
}

type sellingResponse struct {
	XMLName    xml.Name           `xml:"urn:ebay:apis:eBLBaseComponents GetMyeBaySellingResponse"`
	Timestamp  string             `xml:"Timestamp"`
	Ack        string             `xml:"Ack"`
	Errors     []tradingError     `xml:"Errors,omitempty"`
	ActiveList *sellingActiveList `xml:"ActiveList,omitempty"`
}

type sellingActiveList struct {
	Items            []sellingItem    `xml:"ItemArray>Item"`
	PaginationResult paginationResult `xml:"PaginationResult"`
}

type paginationResult struct {
	TotalNumberOfPages   int `xml:"TotalNumberOfPages"`
	TotalNumberOfEntries int `xml:"TotalNumberOfEntries"`
}

type tradingError struct {
	ShortMessage string `xml:"ShortMessage"`
	LongMessage  string `xml:"LongMessage"`
	ErrorCode    string `xml:"ErrorCode"`
	SeverityCode string `xml:"SeverityCode"`
}

func writeXML(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "text/xml")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	io.WriteString(w, xml.Header)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	xml.NewEncoder(w).Encode(v)
}

// getMyeBaySelling pages through published listings. Watch and view
// counts grow with each call so repeated syncs show movement.
func (f *fakeEbay) getMyeBaySelling(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC().Format(time.RFC3339)

	if r.Header.Get("X-EBAY-API-IAF-TOKEN") == "" {
		writeXML(w, sellingResponse{
			Timestamp: now,
			Ack:       "Failure",
			Errors: []tradingError{{
				ShortMessage: "Auth token is invalid.",
				LongMessage:  "Validation of the authentication token in API request failed.",
				ErrorCode:    "931",
				SeverityCode: "Error",
			}},
		})
		return
	}

	var req sellingRequest
	if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request", http.StatusBadRequest)
		return
	}
	perPage := max(req.ActiveList.Pagination.EntriesPerPage, 1)
	page := max(req.ActiveList.Pagination.PageNumber, 1)

	f.mu.Lock()
	total := len(f.listed)
	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)
	items := make([]sellingItem, 0, end-start)
	for i, o := range f.listed[start:end] {
		var it sellingItem
		it.ItemID = o.ListingID
		it.SKU = o.SKU
		it.WatchCount = (start + i) % 7
		it.HitCount = 10 * ((start + i) % 13)
		it.TimeLeft = "P29DT23H"
		it.SellingStatus.CurrentPrice.Value = o.Price
		it.SellingStatus.CurrentPrice.CurrencyID = o.Currency
		items = append(items, it)
	}
	f.mu.Unlock()

	resp := sellingResponse{Timestamp: now, Ack: "Success"}
	resp.ActiveList = &sellingActiveList{
		Items: items,
		PaginationResult: paginationResult{
			TotalNumberOfPages:   (total + perPage - 1) / perPage,
			TotalNumberOfEntries: total,
		},
	}

	writeXML(w, resp)
	f.logger.Info("GetMyeBaySelling", "page", page, "returned", len(items), "total", total)
}

func (f *fakeEbay) rateLimits(w http.ResponseWriter, _ *http.Request) {
	reset := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour).Format(time.RFC3339)

	f.mu.Lock()
	used := len(f.offers) * 2
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"rateLimits": []map[string]any{{
			"apiContext": "sell",
			"apiName":    "inventory",
			"apiVersion": "v1",
			"resources": []map[string]any{{
				"name": "sell.inventory",
				"rates": []map[string]any{{
					"count":      used,
					"limit":      2000000,
					"remaining":  2000000 - used,
					"reset":      reset,
					"timeWindow": 86400,
				}},
			}},
		}},
	})
}
