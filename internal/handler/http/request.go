package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-vidshare/internal/utils"
	"github.com/MKhiriev/go-vidshare/models"
)

// maxJSONBodySize caps non-upload request bodies.
const maxJSONBodySize = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBodySize)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func (h *Handler) clientInfo(r *http.Request) models.ClientInfo {
	return models.ClientInfo{
		IPAddress: utils.ClientIP(r, h.cfg.Server.TrustedProxies),
		UserAgent: r.UserAgent(),
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// pageFromQuery reads limit and offset. Missing values are zero and
// normalized by the service. Values must fit a signed 64-bit SQL integer.
func pageFromQuery(r *http.Request) (models.Page, error) {
	var page models.Page
	query := r.URL.Query()

	for name, dst := range map[string]*uint64{"limit": &page.Limit, "offset": &page.Offset} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseUint(raw, 10, 63)
		if err != nil {
			return models.Page{}, fmt.Errorf("%w: %s", ErrInvalidQuery, name)
		}
		*dst = value
	}

	return page, nil
}

// currentUserID returns the id stored by the auth middleware.
func currentUserID(r *http.Request) int64 {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	return userID
}
