package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/ownership"
	"backoffice/internal/metrics"
)

// RequireOwnership authorizes the principal against the resource id in
// the route before the handler runs. A denial and a missing resource
// produce the same 403; a datastore failure during the check is a 500,
// never a denial and never an allow.
func RequireOwnership(engine *ownership.Engine, rt ownership.ResourceType, collector metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := appctx.GetPrincipal(c.Request.Context())
		if p == nil {
			abortWith(c, apperror.NewUnauthorized("authentication required"))
			return
		}

		resourceID, err := id.Parse(c.Param("id"))
		if err != nil {
			abortWith(c, apperror.NewValidation("invalid id format"))
			return
		}

		switch err := engine.Authorize(c.Request.Context(), p, rt, resourceID); {
		case err == nil:
			collector.RecordOwnershipDecision(string(rt), "allow")
			c.Next()
		case errors.Is(err, ownership.ErrDenied):
			collector.RecordOwnershipDecision(string(rt), "deny")
			abortWith(c, apperror.NewForbidden("access denied"))
		default:
			collector.RecordOwnershipDecision(string(rt), "error")
			if apperror.IsAppError(err) {
				abortWith(c, err)
			} else {
				abortWith(c, apperror.NewUpstream(err))
			}
		}
	}
}
