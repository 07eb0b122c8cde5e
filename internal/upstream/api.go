// internal/upstream/api.go
package upstream

import (
	"context"
	"net/url"

	"hostel-portal/internal/domain/auth"
	"hostel-portal/internal/domain/chat"
	"hostel-portal/internal/domain/complaint"
	"hostel-portal/internal/domain/fee"
	"hostel-portal/internal/domain/leave"
	"hostel-portal/internal/domain/location"
	"hostel-portal/internal/domain/student"
)

func withQuery(endpoint string, query url.Values) string {
	if len(query) == 0 {
		return endpoint
	}
	return endpoint + "?" + query.Encode()
}

// ========== Auth ==========

func (c *Client) Login(ctx context.Context, sid string, req *auth.LoginRequest) (*Result, error) {
	return c.Post(ctx, sid, "/auth/login", req)
}

func (c *Client) WardenSignup(ctx context.Context, sid string, req *auth.WardenSignupRequest) (*Result, error) {
	return c.Post(ctx, sid, "/auth/warden-signup", req)
}

func (c *Client) ChangePassword(ctx context.Context, sid string, req *auth.ChangePasswordRequest) (*Result, error) {
	return c.Put(ctx, sid, "/auth/change-password", req)
}

// ========== Students ==========

func (c *Client) StudentProfile(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/students/profile")
}

func (c *Client) Students(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/students")
}

func (c *Client) Student(ctx context.Context, sid, id string) (*Result, error) {
	return c.Get(ctx, sid, "/students/"+id)
}

func (c *Client) CreateStudent(ctx context.Context, sid string, req *student.CreateStudentRequest) (*Result, error) {
	return c.Post(ctx, sid, "/students", req)
}

func (c *Client) UpdateStudent(ctx context.Context, sid, id string, req *student.UpdateStudentRequest) (*Result, error) {
	return c.Put(ctx, sid, "/students/"+id, req)
}

func (c *Client) DeleteStudent(ctx context.Context, sid, id string) (*Result, error) {
	return c.Delete(ctx, sid, "/students/"+id)
}

// ========== Entry / Exit ==========

type EntryExitMark struct {
	StudentID string `json:"studentId,omitempty"`
	Method    string `json:"method,omitempty"`
}

func (c *Client) MarkEntry(ctx context.Context, sid string, mark *EntryExitMark) (*Result, error) {
	return c.Post(ctx, sid, "/entry-exit/entry", mark)
}

func (c *Client) MarkExit(ctx context.Context, sid string, mark *EntryExitMark) (*Result, error) {
	return c.Post(ctx, sid, "/entry-exit/exit", mark)
}

func (c *Client) EntryExitLogs(ctx context.Context, sid string, query url.Values) (*Result, error) {
	return c.Get(ctx, sid, withQuery("/entry-exit/logs", query))
}

func (c *Client) MyEntryExitLogs(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/entry-exit/my-logs")
}

// ========== Fees & Payments ==========

func (c *Client) Fees(ctx context.Context, sid string, query url.Values) (*Result, error) {
	return c.Get(ctx, sid, withQuery("/fees", query))
}

func (c *Client) Fee(ctx context.Context, sid, id string) (*Result, error) {
	return c.Get(ctx, sid, "/fees/"+id)
}

func (c *Client) CreateFee(ctx context.Context, sid string, req *fee.CreateFeeRequest) (*Result, error) {
	return c.Post(ctx, sid, "/fees", req)
}

func (c *Client) UpdateFee(ctx context.Context, sid, id string, req *fee.UpdateFeeRequest) (*Result, error) {
	return c.Put(ctx, sid, "/fees/"+id, req)
}

func (c *Client) MarkFeePaid(ctx context.Context, sid, id string, req *fee.MarkPaidRequest) (*Result, error) {
	return c.Put(ctx, sid, "/fees/"+id+"/mark-paid", req)
}

func (c *Client) DeleteFee(ctx context.Context, sid, id string) (*Result, error) {
	return c.Delete(ctx, sid, "/fees/"+id)
}

func (c *Client) PaymentsSummary(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/payments")
}

func (c *Client) Pay(ctx context.Context, sid string, req *fee.PayRequest) (*Result, error) {
	return c.Post(ctx, sid, "/payments/pay", req)
}

// ========== Complaints ==========

func (c *Client) CreateComplaint(ctx context.Context, sid string, req *complaint.CreateComplaintRequest) (*Result, error) {
	return c.Post(ctx, sid, "/complaints", req)
}

func (c *Client) Complaints(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/complaints")
}

func (c *Client) MyComplaints(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/complaints/my")
}

func (c *Client) UpdateComplaintStatus(ctx context.Context, sid, id string, req *complaint.UpdateStatusRequest) (*Result, error) {
	return c.Put(ctx, sid, "/complaints/"+id+"/status", req)
}

// ========== Leaves ==========

func (c *Client) CreateLeave(ctx context.Context, sid string, req *leave.CreateLeaveRequest) (*Result, error) {
	return c.Post(ctx, sid, "/leaves", req)
}

func (c *Client) CancelLeave(ctx context.Context, sid, id string) (*Result, error) {
	return c.Put(ctx, sid, "/leaves/"+id+"/cancel", nil)
}

func (c *Client) Leaves(ctx context.Context, sid string, query url.Values) (*Result, error) {
	return c.Get(ctx, sid, withQuery("/leaves", query))
}

func (c *Client) MyLeaves(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/leaves/my")
}

func (c *Client) UpdateLeaveStatus(ctx context.Context, sid, id string, req *leave.UpdateStatusRequest) (*Result, error) {
	return c.Put(ctx, sid, "/leaves/"+id+"/status", req)
}

func (c *Client) ParentLeaveApproval(ctx context.Context, sid, id string, req *leave.ParentApprovalRequest) (*Result, error) {
	return c.Put(ctx, sid, "/leaves/"+id+"/parent-approval", req)
}

func (c *Client) ExportOutingReport(ctx context.Context, sid string) ([]byte, string, error) {
	return c.DoRaw(ctx, sid, "/warden/outing/export")
}

// ========== Parent ==========

func (c *Client) Child(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/parent/child")
}

func (c *Client) ChildRoom(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/parent/child/room")
}

func (c *Client) ChildFees(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/parent/child/fees")
}

func (c *Client) ChildEntryExit(ctx context.Context, sid string, query url.Values) (*Result, error) {
	return c.Get(ctx, sid, withQuery("/parent/child/entry-exit", query))
}

func (c *Client) ChildLeaves(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/parent/child/leaves")
}

func (c *Client) ChildStatus(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/parent/child/status")
}

func (c *Client) ChildLocation(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/parent/child/location")
}

func (c *Client) RegisterParent(ctx context.Context, sid string, req *student.RegisterParentRequest) (*Result, error) {
	return c.Post(ctx, sid, "/parent/register", req)
}

// ========== Location ==========

func (c *Client) ToggleLocation(ctx context.Context, sid string) (*Result, error) {
	return c.Put(ctx, sid, "/location/toggle", nil)
}

func (c *Client) UpdateLocation(ctx context.Context, sid string, req *location.UpdateRequest) (*Result, error) {
	return c.Put(ctx, sid, "/location/update", req)
}

func (c *Client) MyLocationStatus(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/location/me")
}

func (c *Client) StudentLocation(ctx context.Context, sid, studentID string) (*Result, error) {
	return c.Get(ctx, sid, "/location/"+studentID)
}

func (c *Client) StudentLocations(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/location/students")
}

// ========== Chat ==========

func (c *Client) MyChat(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/chat")
}

func (c *Client) SendChatMessage(ctx context.Context, sid string, req *chat.SendMessageRequest) (*Result, error) {
	return c.Post(ctx, sid, "/chat/message", req)
}

func (c *Client) WardenChats(ctx context.Context, sid string) (*Result, error) {
	return c.Get(ctx, sid, "/chat/warden")
}

func (c *Client) WardenChat(ctx context.Context, sid, chatID string) (*Result, error) {
	return c.Get(ctx, sid, "/chat/warden/"+chatID)
}

func (c *Client) WardenSendMessage(ctx context.Context, sid, chatID string, req *chat.SendMessageRequest) (*Result, error) {
	return c.Post(ctx, sid, "/chat/warden/"+chatID+"/message", req)
}
