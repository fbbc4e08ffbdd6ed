package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// metaCodeKey carries the original Code inside the status detail so codes that
// share a gRPC code survive the round trip.
const metaCodeKey = "_code"

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	// Check if it's already a gRPC status error
	if _, ok := status.FromError(err); ok {
		return err
	}

	if customErr, ok := asError(err); ok {
		st := status.New(customErr.Code.GRPCCode(), customErr.Message)

		fields := make(map[string]interface{}, len(customErr.Meta)+1)
		for k, v := range customErr.Meta {
			fields[k] = v
		}
		fields[metaCodeKey] = string(customErr.Code)

		// Meta values that cannot be expressed as a Struct are dropped rather
		// than failing the response.
		if details, detailErr := structpb.NewStruct(fields); detailErr == nil {
			if withDetails, detailErr := st.WithDetails(details); detailErr == nil {
				st = withDetails
			}
		}

		return st.Err()
	}

	return status.Error(codes.Internal, err.Error())
}

// FromGRPCError converts a gRPC error to our custom error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    grpcCodeToCode(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		details, ok := detail.(*structpb.Struct)
		if !ok {
			continue
		}
		meta := details.AsMap()
		if code, ok := meta[metaCodeKey].(string); ok {
			customErr.Code = Code(code)
			delete(meta, metaCodeKey)
		}
		if len(meta) > 0 {
			customErr.Meta = meta
		}
		break
	}

	return customErr
}

// grpcCodes pairs each Code with its gRPC status code. The mapping is one to
// one, so the reverse lookup is built from the same table.
var grpcCodes = map[Code]codes.Code{
	CodeOK:                 codes.OK,
	CodeCanceled:           codes.Canceled,
	CodeInvalidArgument:    codes.InvalidArgument,
	CodeDeadlineExceeded:   codes.DeadlineExceeded,
	CodeNotFound:           codes.NotFound,
	CodeAlreadyExists:      codes.AlreadyExists,
	CodeFailedPrecondition: codes.FailedPrecondition,
	CodeAborted:            codes.Aborted,
	CodeOutOfRange:         codes.OutOfRange,
	CodeUnimplemented:      codes.Unimplemented,
	CodeInternal:           codes.Internal,
	CodeUnavailable:        codes.Unavailable,
}

var fromGRPCCodes = func() map[codes.Code]Code {
	reverse := make(map[codes.Code]Code, len(grpcCodes))
	for code, grpcCode := range grpcCodes {
		reverse[grpcCode] = code
	}
	return reverse
}()

// GRPCCode returns the status code for c; unknown codes map to Unknown
func (c Code) GRPCCode() codes.Code {
	if grpcCode, ok := grpcCodes[c]; ok {
		return grpcCode
	}
	return codes.Unknown
}

// grpcCodeToCode is the reverse of GRPCCode; anything unmapped is Internal
func grpcCodeToCode(grpcCode codes.Code) Code {
	if code, ok := fromGRPCCodes[grpcCode]; ok {
		return code
	}
	return CodeInternal
}
