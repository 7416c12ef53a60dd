package workspacev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "testplatform.workspace.v1.WorkspaceService"

const (
	WorkspaceService_SaveWorkspace_FullMethodName            = "/" + ServiceName + "/SaveWorkspace"
	WorkspaceService_ListWorkspaces_FullMethodName           = "/" + ServiceName + "/ListWorkspaces"
	WorkspaceService_ListWorkspacesWithOrg_FullMethodName    = "/" + ServiceName + "/ListWorkspacesWithOrg"
	WorkspaceService_DeleteWorkspace_FullMethodName          = "/" + ServiceName + "/DeleteWorkspace"
	WorkspaceService_ListUserWorkspaces_FullMethodName       = "/" + ServiceName + "/ListUserWorkspaces"
	WorkspaceService_ListOrgWorkspacesForUser_FullMethodName = "/" + ServiceName + "/ListOrgWorkspacesForUser"
	WorkspaceService_UpdateWorkspaceMember_FullMethodName    = "/" + ServiceName + "/UpdateWorkspaceMember"
	WorkspaceService_AdminCreateWorkspace_FullMethodName     = "/" + ServiceName + "/AdminCreateWorkspace"
	WorkspaceService_AdminUpdateWorkspace_FullMethodName     = "/" + ServiceName + "/AdminUpdateWorkspace"
	WorkspaceService_CheckWorkspaceOwner_FullMethodName      = "/" + ServiceName + "/CheckWorkspaceOwner"
)

// WorkspaceServiceServer is the server API for WorkspaceService.
type WorkspaceServiceServer interface {
	SaveWorkspace(context.Context, *SaveWorkspaceRequest) (*SaveWorkspaceResponse, error)
	ListWorkspaces(context.Context, *ListWorkspacesRequest) (*ListWorkspacesResponse, error)
	ListWorkspacesWithOrg(context.Context, *ListWorkspacesRequest) (*ListWorkspacesWithOrgResponse, error)
	DeleteWorkspace(context.Context, *DeleteWorkspaceRequest) (*DeleteWorkspaceResponse, error)
	ListUserWorkspaces(context.Context, *ListUserWorkspacesRequest) (*ListWorkspacesResponse, error)
	ListOrgWorkspacesForUser(context.Context, *ListOrgWorkspacesForUserRequest) (*ListWorkspacesResponse, error)
	UpdateWorkspaceMember(context.Context, *UpdateWorkspaceMemberRequest) (*UpdateWorkspaceMemberResponse, error)
	AdminCreateWorkspace(context.Context, *AdminCreateWorkspaceRequest) (*SaveWorkspaceResponse, error)
	AdminUpdateWorkspace(context.Context, *AdminUpdateWorkspaceRequest) (*SaveWorkspaceResponse, error)
	CheckWorkspaceOwner(context.Context, *CheckWorkspaceOwnerRequest) (*CheckWorkspaceOwnerResponse, error)
}

// UnimplementedWorkspaceServiceServer returns Unimplemented for every method. Embed it for forward compatibility.
type UnimplementedWorkspaceServiceServer struct{}

func (UnimplementedWorkspaceServiceServer) SaveWorkspace(context.Context, *SaveWorkspaceRequest) (*SaveWorkspaceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveWorkspace not implemented")
}
func (UnimplementedWorkspaceServiceServer) ListWorkspaces(context.Context, *ListWorkspacesRequest) (*ListWorkspacesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListWorkspaces not implemented")
}
func (UnimplementedWorkspaceServiceServer) ListWorkspacesWithOrg(context.Context, *ListWorkspacesRequest) (*ListWorkspacesWithOrgResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListWorkspacesWithOrg not implemented")
}
func (UnimplementedWorkspaceServiceServer) DeleteWorkspace(context.Context, *DeleteWorkspaceRequest) (*DeleteWorkspaceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteWorkspace not implemented")
}
func (UnimplementedWorkspaceServiceServer) ListUserWorkspaces(context.Context, *ListUserWorkspacesRequest) (*ListWorkspacesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListUserWorkspaces not implemented")
}
func (UnimplementedWorkspaceServiceServer) ListOrgWorkspacesForUser(context.Context, *ListOrgWorkspacesForUserRequest) (*ListWorkspacesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOrgWorkspacesForUser not implemented")
}
func (UnimplementedWorkspaceServiceServer) UpdateWorkspaceMember(context.Context, *UpdateWorkspaceMemberRequest) (*UpdateWorkspaceMemberResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateWorkspaceMember not implemented")
}
func (UnimplementedWorkspaceServiceServer) AdminCreateWorkspace(context.Context, *AdminCreateWorkspaceRequest) (*SaveWorkspaceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AdminCreateWorkspace not implemented")
}
func (UnimplementedWorkspaceServiceServer) AdminUpdateWorkspace(context.Context, *AdminUpdateWorkspaceRequest) (*SaveWorkspaceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AdminUpdateWorkspace not implemented")
}
func (UnimplementedWorkspaceServiceServer) CheckWorkspaceOwner(context.Context, *CheckWorkspaceOwnerRequest) (*CheckWorkspaceOwnerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckWorkspaceOwner not implemented")
}

// unary builds the method descriptor for one RPC, running the server interceptor chain when present.
func unary[Req any, Resp any](name string, call func(WorkspaceServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(WorkspaceServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(WorkspaceServiceServer), ctx, req.(*Req))
			})
		},
	}
}

// WorkspaceService_ServiceDesc is the grpc.ServiceDesc for WorkspaceService.
var WorkspaceService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*WorkspaceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("SaveWorkspace", WorkspaceServiceServer.SaveWorkspace),
		unary("ListWorkspaces", WorkspaceServiceServer.ListWorkspaces),
		unary("ListWorkspacesWithOrg", WorkspaceServiceServer.ListWorkspacesWithOrg),
		unary("DeleteWorkspace", WorkspaceServiceServer.DeleteWorkspace),
		unary("ListUserWorkspaces", WorkspaceServiceServer.ListUserWorkspaces),
		unary("ListOrgWorkspacesForUser", WorkspaceServiceServer.ListOrgWorkspacesForUser),
		unary("UpdateWorkspaceMember", WorkspaceServiceServer.UpdateWorkspaceMember),
		unary("AdminCreateWorkspace", WorkspaceServiceServer.AdminCreateWorkspace),
		unary("AdminUpdateWorkspace", WorkspaceServiceServer.AdminUpdateWorkspace),
		unary("CheckWorkspaceOwner", WorkspaceServiceServer.CheckWorkspaceOwner),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "testplatform/workspace/v1/workspace.json",
}

// RegisterWorkspaceServiceServer registers srv with s.
func RegisterWorkspaceServiceServer(s grpc.ServiceRegistrar, srv WorkspaceServiceServer) {
	s.RegisterService(&WorkspaceService_ServiceDesc, srv)
}

// WorkspaceServiceClient calls WorkspaceService with the JSON codec.
type WorkspaceServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWorkspaceServiceClient(cc grpc.ClientConnInterface) *WorkspaceServiceClient {
	return &WorkspaceServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WorkspaceServiceClient) SaveWorkspace(ctx context.Context, in *SaveWorkspaceRequest, opts ...grpc.CallOption) (*SaveWorkspaceResponse, error) {
	return invoke[SaveWorkspaceResponse](ctx, c.cc, WorkspaceService_SaveWorkspace_FullMethodName, in, opts)
}

func (c *WorkspaceServiceClient) ListWorkspaces(ctx context.Context, in *ListWorkspacesRequest, opts ...grpc.CallOption) (*ListWorkspacesResponse, error) {
	return invoke[ListWorkspacesResponse](ctx, c.cc, WorkspaceService_ListWorkspaces_FullMethodName, in, opts)
}

func (c *WorkspaceServiceClient) ListWorkspacesWithOrg(ctx context.Context, in *ListWorkspacesRequest, opts ...grpc.CallOption) (*ListWorkspacesWithOrgResponse, error) {
	return invoke[ListWorkspacesWithOrgResponse](ctx, c.cc, WorkspaceService_ListWorkspacesWithOrg_FullMethodName, in, opts)
}

func (c *WorkspaceServiceClient) DeleteWorkspace(ctx context.Context, in *DeleteWorkspaceRequest, opts ...grpc.CallOption) (*DeleteWorkspaceResponse, error) {
	return invoke[DeleteWorkspaceResponse](ctx, c.cc, WorkspaceService_DeleteWorkspace_FullMethodName, in, opts)
}

func (c *WorkspaceServiceClient) ListUserWorkspaces(ctx context.Context, in *ListUserWorkspacesRequest, opts ...grpc.CallOption) (*ListWorkspacesResponse, error) {
	return invoke[ListWorkspacesResponse](ctx, c.cc, WorkspaceService_ListUserWorkspaces_FullMethodName, in, opts)
}

func (c *WorkspaceServiceClient) ListOrgWorkspacesForUser(ctx context.Context, in *ListOrgWorkspacesForUserRequest, opts ...grpc.CallOption) (*ListWorkspacesResponse, error) {
	return invoke[ListWorkspacesResponse](ctx, c.cc, WorkspaceService_ListOrgWorkspacesForUser_FullMethodName, in, opts)
}

func (c *WorkspaceServiceClient) UpdateWorkspaceMember(ctx context.Context, in *UpdateWorkspaceMemberRequest, opts ...grpc.CallOption) (*UpdateWorkspaceMemberResponse, error) {
	return invoke[UpdateWorkspaceMemberResponse](ctx, c.cc, WorkspaceService_UpdateWorkspaceMember_FullMethodName, in, opts)
}

func (c *WorkspaceServiceClient) AdminCreateWorkspace(ctx context.Context, in *AdminCreateWorkspaceRequest, opts ...grpc.CallOption) (*SaveWorkspaceResponse, error) {
	return invoke[SaveWorkspaceResponse](ctx, c.cc, WorkspaceService_AdminCreateWorkspace_FullMethodName, in, opts)
}

func (c *WorkspaceServiceClient) AdminUpdateWorkspace(ctx context.Context, in *AdminUpdateWorkspaceRequest, opts ...grpc.CallOption) (*SaveWorkspaceResponse, error) {
	return invoke[SaveWorkspaceResponse](ctx, c.cc, WorkspaceService_AdminUpdateWorkspace_FullMethodName, in, opts)
}

func (c *WorkspaceServiceClient) CheckWorkspaceOwner(ctx context.Context, in *CheckWorkspaceOwnerRequest, opts ...grpc.CallOption) (*CheckWorkspaceOwnerResponse, error) {
	return invoke[CheckWorkspaceOwnerResponse](ctx, c.cc, WorkspaceService_CheckWorkspaceOwner_FullMethodName, in, opts)
}
