package interceptors

import (
	"context"
	"encoding/json"
	"net"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"testplatform/backend/internal/audit"
)

type rpcAuditMetadata struct {
	FullMethod  string `json:"full_method"`
	StatusCode  string `json:"status_code"`
	WorkspaceID string `json:"workspace_id,omitempty"`
}

// workspaceTarget is implemented by requests addressing an existing workspace.
type workspaceTarget interface {
	GetWorkspaceID() string
}

func auditMetadata(fullMethod string, req interface{}, err error) string {
	meta := rpcAuditMetadata{FullMethod: fullMethod, StatusCode: status.Code(err).String()}
	if wt, ok := req.(workspaceTarget); ok {
		meta.WorkspaceID = wt.GetWorkspaceID()
	}
	b, merr := json.Marshal(meta)
	if merr != nil {
		return ""
	}
	return string(b)
}

// AuditUnary records every mutating workspace RPC made inside an organization, failed ones included,
// after the handler returns. Reads (get, list, check) and skipMethods are not recorded.
func AuditUnary(logger audit.AuditLogger, skipMethods map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		resp, err := handler(ctx, req)
		if logger == nil || skipMethods[info.FullMethod] || audit.IsReadOnly(info.FullMethod) {
			return resp, err
		}
		orgID, _ := GetOrgID(ctx)
		if orgID == "" {
			return resp, err
		}
		userID, _ := GetUserID(ctx)
		ar := audit.ParseFullMethod(info.FullMethod)
		logger.LogEvent(ctx, orgID, userID, ar.Action, ar.Resource, auditMetadata(info.FullMethod, req, err))
		return resp, err
	}
}

// ClientIP is an audit.IPExtractor. It prefers the first x-forwarded-for hop, then x-real-ip,
// then the transport peer; "" when none is known.
func ClientIP(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		for _, key := range []string{"x-forwarded-for", "x-real-ip"} {
			if ip := firstHop(md.Get(key)); ip != "" {
				return ip
			}
		}
	}
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func firstHop(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	first, _, _ := strings.Cut(vals[0], ",")
	return strings.TrimSpace(first)
}
