package middleware

import (
	"obra_flow_app_go/services"

	"github.com/labstack/echo/v4"
)

const ContextKeyAuditContext = "audit_context"

// Header set by the CRM frontend to identify who is acting. There is no
// session layer here; identity comes from the upstream system.
const HeaderActorName = "X-Actor-Name"

// AuditContext is middleware that extracts actor info for audit logging
func AuditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := services.AuditContext{
				ActorName: c.Request().Header.Get(HeaderActorName),
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}
			if ctx.ActorName == "" {
				ctx.ActorName = "anonymous"
			}

			c.Set(ContextKeyAuditContext, ctx)
			return next(c)
		}
	}
}

// GetAuditContext retrieves the audit context from the request
func GetAuditContext(c echo.Context) services.AuditContext {
	if ctx, ok := c.Get(ContextKeyAuditContext).(services.AuditContext); ok {
		return ctx
	}
	return services.AuditContext{}
}
