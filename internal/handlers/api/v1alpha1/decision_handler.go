package v1alpha1

import (
	"context"
	"encoding/json"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/showdown-player/internal/errors"
	"github.com/KirkDiggler/showdown-player/internal/orchestrators/decision"
)

// Request and response field names
const (
	FieldBattleID   = "battle_id"
	FieldSide       = "side"
	FieldRequest    = "request"
	FieldMessage    = "message"
	FieldDecisionID = "decision_id"
	FieldKind       = "kind"
	FieldChoice     = "choice"
	FieldRQID       = "rqid"
	FieldResources  = "resources"
	FieldRecovered  = "recovered"
	FieldSummary    = "summary"
	FieldLastChoice = "last_choice"
	FieldDecisions  = "decisions"
	FieldExisted    = "existed"
	FieldCanceled   = "canceled"
)

// HandlerConfig holds dependencies for the decision handler
type HandlerConfig struct {
	DecisionService decision.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.DecisionService == nil {
		return errors.InvalidArgument("decision service is required")
	}
	return nil
}

// Handler implements the DecisionService gRPC service
type Handler struct {
	decisionService decision.Service
}

// NewHandler creates a new decision handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		decisionService: cfg.DecisionService,
	}, nil
}

var _ DecisionServiceServer = (*Handler)(nil)

// Decide resolves a decision request for one battle side.
// The request field holds the request JSON as a string or as an object.
func (h *Handler) Decide(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, side, err := battleSide(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	raw, err := requestJSON(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.decisionService.Decide(ctx, &decision.DecideInput{
		BattleID: battleID,
		Side:     side,
		Request:  raw,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := decisionStruct(output)
	return resp, errors.ToGRPCError(err)
}

// ReportError passes an |error| message to the decision service
func (h *Handler) ReportError(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, side, err := battleSide(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	message := stringField(req, FieldMessage)
	if message == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("message is required"))
	}

	output, err := h.decisionService.ReportError(ctx, &decision.ReportErrorInput{
		BattleID: battleID,
		Side:     side,
		Message:  message,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	resp, err := decisionStruct(output.Decision)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	resp.Fields[FieldRecovered] = structpb.NewBoolValue(output.Recovered)
	return resp, nil
}

// GetOptions returns the option summary of the latest request
func (h *Handler) GetOptions(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, side, err := battleSide(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.decisionService.GetOptions(ctx, &decision.GetOptionsInput{
		BattleID: battleID,
		Side:     side,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	summary, err := toStruct(output.Summary)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldSummary:    structpb.NewStructValue(summary),
			FieldLastChoice: structpb.NewStringValue(output.LastChoice),
			FieldDecisions:  structpb.NewNumberValue(float64(output.Decisions)),
		},
	}, nil
}

// EndBattle drops a battle side and abandons any decision in flight
func (h *Handler) EndBattle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	battleID, side, err := battleSide(req)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.decisionService.EndBattle(ctx, &decision.EndBattleInput{
		BattleID: battleID,
		Side:     side,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldExisted:  structpb.NewBoolValue(output.Existed),
			FieldCanceled: structpb.NewBoolValue(output.Canceled),
		},
	}, nil
}

func battleSide(req *structpb.Struct) (string, string, error) {
	battleID := stringField(req, FieldBattleID)
	side := stringField(req, FieldSide)

	vb := errors.NewValidationBuilder()
	if battleID == "" {
		vb.RequiredField(FieldBattleID)
	}
	if side == "" {
		vb.RequiredField(FieldSide)
	}
	return battleID, side, vb.Build()
}

func stringField(req *structpb.Struct, name string) string {
	if req == nil {
		return ""
	}
	return req.GetFields()[name].GetStringValue()
}

func requestJSON(req *structpb.Struct) (json.RawMessage, error) {
	value, ok := req.GetFields()[FieldRequest]
	if !ok {
		return nil, errors.InvalidArgument("request is required")
	}

	switch kind := value.GetKind().(type) {
	case *structpb.Value_StringValue:
		if kind.StringValue == "" {
			return nil, errors.InvalidArgument("request is required")
		}
		return json.RawMessage(kind.StringValue), nil
	case *structpb.Value_StructValue:
		data, err := protojson.Marshal(kind.StructValue)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request")
		}
		return data, nil
	default:
		return nil, errors.InvalidArgument("request must be a JSON string or object")
	}
}

func decisionStruct(output *decision.DecideOutput) (*structpb.Struct, error) {
	if output == nil {
		return nil, errors.Internal("decision service returned no decision")
	}

	resources, err := toStruct(output.Resources)
	if err != nil {
		return nil, err
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			FieldDecisionID: structpb.NewStringValue(output.DecisionID),
			FieldKind:       structpb.NewStringValue(string(output.Kind)),
			FieldChoice:     structpb.NewStringValue(output.Choice),
			FieldRQID:       structpb.NewNumberValue(float64(output.RQID)),
			FieldResources:  structpb.NewStructValue(resources),
		},
	}, nil
}

// toStruct converts a JSON-tagged value into a Struct
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}

	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}
