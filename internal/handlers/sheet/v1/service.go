package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "sheet.v1.CharacterStore"

// Full method names
const (
	ListCharactersFullMethodName      = "/" + ServiceName + "/ListCharacters"
	GetCharacterFullMethodName        = "/" + ServiceName + "/GetCharacter"
	SaveCharacterFullMethodName       = "/" + ServiceName + "/SaveCharacter"
	DeleteCharacterFullMethodName     = "/" + ServiceName + "/DeleteCharacter"
	GetStorageDirectoryFullMethodName = "/" + ServiceName + "/GetStorageDirectory"
)

// CharacterStoreServer is the server API for the CharacterStore service.
// Messages are protobuf well-known types; a character travels as a Struct
// holding its JSON record.
type CharacterStoreServer interface {
	ListCharacters(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetCharacter(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	SaveCharacter(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	DeleteCharacter(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	GetStorageDirectory(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// RegisterCharacterStoreServer registers srv with the gRPC server
func RegisterCharacterStoreServer(s grpc.ServiceRegistrar, srv CharacterStoreServer) {
	s.RegisterService(&CharacterStoreServiceDesc, srv)
}

// CharacterStoreServiceDesc describes the CharacterStore service
var CharacterStoreServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CharacterStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListCharacters", Handler: listCharactersHandler},
		{MethodName: "GetCharacter", Handler: getCharacterHandler},
		{MethodName: "SaveCharacter", Handler: saveCharacterHandler},
		{MethodName: "DeleteCharacter", Handler: deleteCharacterHandler},
		{MethodName: "GetStorageDirectory", Handler: getStorageDirectoryHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "sheet/v1/character_store.proto",
}

func listCharactersHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CharacterStoreServer).ListCharacters(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListCharactersFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CharacterStoreServer).ListCharacters(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getCharacterHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CharacterStoreServer).GetCharacter(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetCharacterFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CharacterStoreServer).GetCharacter(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func saveCharacterHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CharacterStoreServer).SaveCharacter(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SaveCharacterFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CharacterStoreServer).SaveCharacter(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func deleteCharacterHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CharacterStoreServer).DeleteCharacter(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DeleteCharacterFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CharacterStoreServer).DeleteCharacter(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getStorageDirectoryHandler(
	srv interface{},
	ctx context.Context,
	dec func(interface{}) error,
	interceptor grpc.UnaryServerInterceptor,
) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CharacterStoreServer).GetStorageDirectory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetStorageDirectoryFullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CharacterStoreServer).GetStorageDirectory(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// CharacterStoreClient is the client API for the CharacterStore service
type CharacterStoreClient interface {
	ListCharacters(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	GetCharacter(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	SaveCharacter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DeleteCharacter(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetStorageDirectory(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type characterStoreClient struct {
	cc grpc.ClientConnInterface
}

// NewCharacterStoreClient creates a client on an existing connection
func NewCharacterStoreClient(cc grpc.ClientConnInterface) CharacterStoreClient {
	return &characterStoreClient{cc: cc}
}

func (c *characterStoreClient) ListCharacters(
	ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption,
) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListCharactersFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *characterStoreClient) GetCharacter(
	ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetCharacterFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *characterStoreClient) SaveCharacter(
	ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, SaveCharacterFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *characterStoreClient) DeleteCharacter(
	ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption,
) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DeleteCharacterFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *characterStoreClient) GetStorageDirectory(
	ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption,
) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GetStorageDirectoryFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
