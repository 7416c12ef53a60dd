package audit

import "strings"

// ActionResource holds action and resource derived from a gRPC full method name.
type ActionResource struct {
	Action   string
	Resource string
}

// Overrides for methods whose verb does not describe the audited change.
var methodOverrides = map[string]ActionResource{
	"/testplatform.workspace.v1.WorkspaceService/UpdateWorkspaceMember": {Action: "member_updated", Resource: "workspace_member"},
	"/testplatform.workspace.v1.WorkspaceService/AdminCreateWorkspace":  {Action: "admin_create", Resource: "workspace"},
	"/testplatform.workspace.v1.WorkspaceService/AdminUpdateWorkspace":  {Action: "admin_update", Resource: "workspace"},
}

// ParseFullMethod returns action and resource for a gRPC full method
// (e.g. /testplatform.workspace.v1.WorkspaceService/DeleteWorkspace -> delete, workspace).
func ParseFullMethod(fullMethod string) ActionResource {
	if ar, ok := methodOverrides[fullMethod]; ok {
		return ar
	}
	// fullMethod format: /package.v1.ServiceName/MethodName
	slash := strings.LastIndex(fullMethod, "/")
	if slash < 0 {
		return ActionResource{Action: "unknown", Resource: "unknown"}
	}
	method := fullMethod[slash+1:]
	beforeSlash := fullMethod[:slash]
	dot := strings.LastIndex(beforeSlash, ".")
	if dot < 0 {
		return ActionResource{Action: strings.ToLower(method), Resource: "unknown"}
	}
	return ActionResource{Action: methodToAction(method), Resource: serviceToResource(beforeSlash[dot+1:])}
}

// IsReadOnly reports whether the method only reads state (get, list, check).
func IsReadOnly(fullMethod string) bool {
	switch ParseFullMethod(fullMethod).Action {
	case "get", "list", "check":
		return true
	}
	return false
}

func serviceToResource(serviceName string) string {
	// WorkspaceService -> workspace
	s := strings.TrimSuffix(serviceName, "Service")
	if s == "" {
		return "unknown"
	}
	return strings.ToLower(s[0:1]) + s[1:]
}

func methodToAction(method string) string {
	switch {
	case strings.HasPrefix(method, "Get") && method != "Get":
		return "get"
	case strings.HasPrefix(method, "List"):
		return "list"
	case strings.HasPrefix(method, "Check"):
		return "check"
	case strings.HasPrefix(method, "Save"):
		return "save"
	case strings.HasPrefix(method, "Create"):
		return "create"
	case strings.HasPrefix(method, "Update"):
		return "update"
	case strings.HasPrefix(method, "Delete"):
		return "delete"
	default:
		return strings.ToLower(method)
	}
}
