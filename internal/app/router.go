// internal/app/router.go
package app

import (
	"hostel-portal/internal/config"
	"hostel-portal/internal/domain/portal"
	authHandler "hostel-portal/internal/handlers/auth"
	chatHandler "hostel-portal/internal/handlers/chat"
	complaintHandler "hostel-portal/internal/handlers/complaint"
	feeHandler "hostel-portal/internal/handlers/fee"
	gatelogHandler "hostel-portal/internal/handlers/gatelog"
	leaveHandler "hostel-portal/internal/handlers/leave"
	locationHandler "hostel-portal/internal/handlers/location"
	parentHandler "hostel-portal/internal/handlers/parent"
	studentHandler "hostel-portal/internal/handlers/student"
	wsHandler "hostel-portal/internal/handlers/websocket"
	"hostel-portal/internal/middleware"
	"hostel-portal/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	StudentHandler   *studentHandler.StudentHandler
	ParentHandler    *parentHandler.ParentHandler
	ComplaintHandler *complaintHandler.ComplaintHandler
	LeaveHandler     *leaveHandler.LeaveHandler
	FeeHandler       *feeHandler.FeeHandler
	ChatHandler      *chatHandler.ChatHandler
	LocationHandler  *locationHandler.LocationHandler
	GatelogHandler   *gatelogHandler.GatelogHandler
	WSHandler        *wsHandler.WebSocketHandler
	Gate             *middleware.GateMiddleware
}

func SetupRouter(r *gin.Engine, cfg config.AppConfig, logger *zap.Logger, h *Handlers) {
	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Entry Points ====================
	r.GET("/", h.AuthHandler.Fallback)
	r.GET("/select-role", h.AuthHandler.SelectRole)
	r.GET("/session", h.AuthHandler.Me)
	r.POST("/logout", h.AuthHandler.Logout)

	for _, role := range []portal.Role{portal.RoleStudent, portal.RoleParent, portal.RoleWarden} {
		r.GET(role.LoginPath(), h.AuthHandler.LoginPage(role))
		r.POST(role.LoginPath(), h.AuthHandler.Login(role))
	}
	r.POST("/warden/signup", h.AuthHandler.WardenSignup)

	// Password change stays reachable for users holding a temporary
	// password, so it mounts behind the login check only.
	for _, role := range []portal.Role{portal.RoleStudent, portal.RoleParent} {
		cp := r.Group(role.ChangePasswordPath())
		cp.Use(h.Gate.RequireLogin(role))
		{
			cp.GET("", func(c *gin.Context) {
				response.Success(c, 200, "change password", nil)
			})
			cp.POST("", h.AuthHandler.ChangePassword)
		}
	}

	// ==================== Gate Devices ====================
	device := r.Group("/device")
	device.Use(middleware.DeviceAuth(cfg.DeviceKeyHash))
	{
		device.POST("/scan", h.GatelogHandler.Scan)
	}

	// ==================== Student Portal ====================
	student := r.Group("/student")
	student.Use(h.Gate.Require(portal.RoleStudent))
	{
		student.GET("/dashboard", h.StudentHandler.Profile)
		student.GET("/profile", h.StudentHandler.Profile)

		student.GET("/complaints", h.ComplaintHandler.Mine)
		student.POST("/complaints", h.ComplaintHandler.Create)

		student.GET("/leaves", h.LeaveHandler.Mine)
		student.POST("/leaves", h.LeaveHandler.Create)
		student.PUT("/leaves/:id/cancel", h.LeaveHandler.Cancel)

		student.GET("/fees", h.FeeHandler.List)
		student.POST("/fees/pay", h.FeeHandler.Pay)

		student.GET("/entry-exit", h.StudentHandler.MyEntryExit)

		student.GET("/location", h.LocationHandler.Status)
		student.PUT("/location/toggle", h.LocationHandler.Toggle)
		student.PUT("/location/update", h.LocationHandler.Update)
	}

	// ==================== Parent Portal ====================
	parent := r.Group("/parent")
	parent.Use(h.Gate.Require(portal.RoleParent))
	{
		parent.GET("/dashboard", h.ParentHandler.Child)

		parent.GET("/child", h.ParentHandler.Child)
		parent.GET("/child/room", h.ParentHandler.ChildRoom)
		parent.GET("/child/fees", h.ParentHandler.ChildFees)
		parent.GET("/child/entry-exit", h.ParentHandler.ChildEntryExit)
		parent.GET("/child/leaves", h.ParentHandler.ChildLeaves)
		parent.GET("/child/status", h.ParentHandler.ChildStatus)
		parent.GET("/child/location", h.ParentHandler.ChildLocation)

		parent.PUT("/leaves/:id/approval", h.LeaveHandler.ParentApproval)

		parent.POST("/fees/pay", h.FeeHandler.Pay)

		parent.GET("/chat", h.ChatHandler.Mine)
		parent.POST("/chat/message", h.ChatHandler.Send)
	}

	// ==================== Warden Portal ====================
	warden := r.Group("/warden")
	warden.Use(h.Gate.Require(portal.RoleWarden))
	{
		warden.GET("/dashboard", h.StudentHandler.List)

		warden.GET("/students", h.StudentHandler.List)
		warden.POST("/students", h.StudentHandler.Create)
		warden.GET("/students/:id", h.StudentHandler.Get)
		warden.PUT("/students/:id", h.StudentHandler.Update)
		warden.DELETE("/students/:id", h.StudentHandler.Delete)
		warden.POST("/parents", h.StudentHandler.RegisterParent)

		warden.GET("/entry-exit", h.StudentHandler.EntryExitLogs)

		warden.GET("/fees", h.FeeHandler.List)
		warden.POST("/fees", h.FeeHandler.Create)
		warden.GET("/fees/:id", h.FeeHandler.Get)
		warden.PUT("/fees/:id", h.FeeHandler.Update)
		warden.PUT("/fees/:id/mark-paid", h.FeeHandler.MarkPaid)
		warden.DELETE("/fees/:id", h.FeeHandler.Delete)
		warden.GET("/payments", h.FeeHandler.PaymentsSummary)

		warden.GET("/complaints", h.ComplaintHandler.List)
		warden.PUT("/complaints/:id/status", h.ComplaintHandler.UpdateStatus)

		warden.GET("/leaves", h.LeaveHandler.List)
		warden.PUT("/leaves/:id/status", h.LeaveHandler.UpdateStatus)
		warden.GET("/outing/export", h.LeaveHandler.ExportOutingReport)

		warden.GET("/chats", h.ChatHandler.List)
		warden.GET("/chats/:chatId", h.ChatHandler.Get)
		warden.POST("/chats/:chatId/message", h.ChatHandler.SendAsWarden)

		warden.GET("/locations", h.LocationHandler.Students)
		warden.GET("/locations/:id", h.LocationHandler.Student)

		warden.GET("/security/scans", h.GatelogHandler.List)
		warden.GET("/security/backlog", h.GatelogHandler.Backlog)

		warden.GET("/ws/stats", h.WSHandler.GetStats)
	}

	// ==================== Fallback ====================
	// Unknown paths inside a role area still pass the gate, so an expired
	// session deep link lands on the right login page.
	routes := portal.NewRouteTable(map[string]portal.Role{
		"/student/": portal.RoleStudent,
		"/parent/":  portal.RoleParent,
		"/warden/":  portal.RoleWarden,
	})

	r.NoRoute(func(c *gin.Context) {
		if required, ok := routes.RequiredRole(c.Request.URL.Path); ok {
			h.Gate.Require(required)(c)
			if c.IsAborted() {
				return
			}
		}
		h.AuthHandler.Fallback(c)
	})
}
