package ebay

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	tradingCompatLevel = "1193"
	tradingSiteID      = "0"
	tradingNamespace   = "urn:ebay:apis:eBLBaseComponents"

	maxEntriesPerPage = 200
)

type getMyeBaySellingRequest struct {
	XMLName    xml.Name         `xml:"GetMyeBaySellingRequest"`
	Xmlns      string           `xml:"xmlns,attr"`
	ActiveList activeListFilter `xml:"ActiveList"`
}

type activeListFilter struct {
	Include    bool       `xml:"Include"`
	Pagination pagination `xml:"Pagination"`
}

type pagination struct {
	EntriesPerPage int `xml:"EntriesPerPage"`
	PageNumber     int `xml:"PageNumber"`
}

type getMyeBaySellingResponse struct {
	Ack        string         `xml:"Ack"`
	Errors     []tradingError `xml:"Errors"`
	ActiveList struct {
		Items            []tradingItem `xml:"ItemArray>Item"`
		PaginationResult struct {
			TotalNumberOfPages   int `xml:"TotalNumberOfPages"`
			TotalNumberOfEntries int `xml:"TotalNumberOfEntries"`
		} `xml:"PaginationResult"`
	} `xml:"ActiveList"`
}

type tradingError struct {
	ShortMessage string `xml:"ShortMessage"`
	LongMessage  string `xml:"LongMessage"`
	ErrorCode    string `xml:"ErrorCode"`
	SeverityCode string `xml:"SeverityCode"`
}

type tradingItem struct {
	ItemID        string `xml:"ItemID"`
	SKU           string `xml:"SKU"`
	WatchCount    int    `xml:"WatchCount"`
	HitCount      int    `xml:"HitCount"`
	TimeLeft      string `xml:"TimeLeft"`
	SellingStatus struct {
		BidCount     int `xml:"BidCount"`
		CurrentPrice struct {
			Value      string `xml:",chardata"`
			CurrencyID string `xml:"currencyID,attr"`
		} `xml:"CurrentPrice"`
	} `xml:"SellingStatus"`
}

// GetMyeBaySelling returns one page of the seller's active listings with
// their watch, view and bid counts. page is 1-based.
func (c *Client) GetMyeBaySelling(ctx context.Context, auth Auth, page, perPage int) (*SellingPage, error) {
	cfg, err := c.env(auth.Environment)
	if err != nil {
		return nil, err
	}

	page = max(page, 1)
	perPage = min(max(perPage, 1), maxEntriesPerPage)

	payload, err := xml.Marshal(getMyeBaySellingRequest{
		Xmlns: tradingNamespace,
		ActiveList: activeListFilter{
			Include:    true,
			Pagination: pagination{EntriesPerPage: perPage, PageNumber: page},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding GetMyeBaySelling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TradingURL,
		bytes.NewReader(append([]byte(xml.Header), payload...)))
	if err != nil {
		return nil, fmt.Errorf("creating GetMyeBaySelling request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("X-EBAY-API-SITEID", tradingSiteID)
	req.Header.Set("X-EBAY-API-COMPATIBILITY-LEVEL", tradingCompatLevel)
	req.Header.Set("X-EBAY-API-CALL-NAME", "GetMyeBaySelling")
	req.Header.Set("X-EBAY-API-IAF-TOKEN", auth.Token)

	body, _, err := c.send(ctx, "trading_get_my_ebay_selling", req)
	if err != nil {
		return nil, fmt.Errorf("getting active listings page %d: %w", page, err)
	}

	var resp getMyeBaySellingResponse
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing GetMyeBaySelling response: %w", err)
	}

	if details := tradingFailures(resp); details != nil {
		return nil, fmt.Errorf("getting active listings page %d: %w",
			page, newTradingError("trading_get_my_ebay_selling", http.StatusOK, details))
	}

	return toSellingPage(resp, page)
}

// tradingFailures returns the error-severity entries of a failed call, or
// nil when the call succeeded (warnings are ignored).
func tradingFailures(resp getMyeBaySellingResponse) []ErrorDetail {
	var details []ErrorDetail
	for _, e := range resp.Errors {
		if e.SeverityCode != "" && e.SeverityCode != "Error" {
			continue
		}
		d := ErrorDetail{
			Message:     e.ShortMessage,
			LongMessage: e.LongMessage,
			Code:        e.ErrorCode,
		}
		if id, err := strconv.Atoi(e.ErrorCode); err == nil {
			d.ErrorID = id
		}
		details = append(details, d)
	}
	if len(details) == 0 && resp.Ack == "Failure" {
		details = []ErrorDetail{{Message: "GetMyeBaySelling failed without error details"}}
	}
	if resp.Ack != "Failure" && resp.Ack != "PartialFailure" {
		return nil
	}
	return details
}

func toSellingPage(resp getMyeBaySellingResponse, page int) (*SellingPage, error) {
	out := &SellingPage{
		Items:      make([]SellingItem, 0, len(resp.ActiveList.Items)),
		Page:       page,
		TotalPages: resp.ActiveList.PaginationResult.TotalNumberOfPages,
		TotalItems: resp.ActiveList.PaginationResult.TotalNumberOfEntries,
	}

	for _, it := range resp.ActiveList.Items {
		item := SellingItem{
			ItemID:        it.ItemID,
			SKU:           it.SKU,
			WatchCount:    it.WatchCount,
			HitCount:      it.HitCount,
			BidCount:      it.SellingStatus.BidCount,
			Currency:      it.SellingStatus.CurrentPrice.CurrencyID,
			TimeRemaining: it.TimeLeft,
		}
		if v := strings.TrimSpace(it.SellingStatus.CurrentPrice.Value); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("parsing current price %q for item %s: %w", v, it.ItemID, err)
			}
			item.CurrentPrice = &d
		}
		out.Items = append(out.Items, item)
	}

	out.HasMore = page < out.TotalPages
	return out, nil
}
