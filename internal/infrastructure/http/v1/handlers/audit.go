package handlers

import (
	"github.com/gin-gonic/gin"

	"gestock/internal/domain/audit"
	"gestock/internal/domain/catalogs"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	*BaseHandler
	reader audit.Reader
}

// NewAuditHandler creates an audit handler.
func NewAuditHandler(reader audit.Reader) *AuditHandler {
	return &AuditHandler{BaseHandler: NewBaseHandler(), reader: reader}
}

// List handles GET /audit.
func (h *AuditHandler) List(c *gin.Context) {
	requestedStore, ok := h.ParseIDQuery(c, "storeId")
	if !ok {
		return
	}
	entityID, ok := h.ParseIDQuery(c, "entityId")
	if !ok {
		return
	}

	// The reader itself is scope-blind; narrow to visible stores here.
	storeID, err := catalogs.StoreFilter(c.Request.Context(), requestedStore)
	if err != nil {
		h.Error(c, err)
		return
	}

	filter := audit.Filter{
		StoreID:  storeID,
		EntityID: entityID,
		Limit:    h.ParseIntQuery(c, "limit", 50),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}
	if entityType := c.Query("entityType"); entityType != "" {
		filter.EntityType = &entityType
	}

	entries, err := h.reader.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OKList(c, entries, len(entries))
}
