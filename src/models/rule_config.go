package models

import (
	"encoding/json"
	"fmt"
)

// Rule trigger and action configs are stored as JSONB. On the wire they are
// flat objects discriminated by a "type" field, e.g.
//
//	{"type": "scheduled", "day": 15, "time": "09:00"}
//	{"type": "balance_threshold", "account_id": 1, "threshold": 1000}
//	{"type": "transaction_match", "merchant": "Netflix", "amount": 199}
//
// Unknown types are rejected at decode time rather than carried around as
// untyped maps.

const (
	TriggerScheduled        = "scheduled"
	TriggerBalanceThreshold = "balance_threshold"
	TriggerTransactionMatch = "transaction_match"
)

type ScheduledTrigger struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

type BalanceThresholdTrigger struct {
	AccountID int64   `json:"account_id"`
	Threshold float64 `json:"threshold"`
}

type TransactionMatchTrigger struct {
	Merchant string   `json:"merchant"`
	Amount   *float64 `json:"amount,omitempty"`
}

// TriggerConditions is a tagged union; exactly one variant is non-nil,
// matching Type.
type TriggerConditions struct {
	Type             string
	Scheduled        *ScheduledTrigger
	BalanceThreshold *BalanceThresholdTrigger
	TransactionMatch *TransactionMatchTrigger
}

func (t *TriggerConditions) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	t.Type = head.Type
	switch head.Type {
	case TriggerScheduled:
		t.Scheduled = &ScheduledTrigger{}
		return json.Unmarshal(data, t.Scheduled)
	case TriggerBalanceThreshold:
		t.BalanceThreshold = &BalanceThresholdTrigger{}
		return json.Unmarshal(data, t.BalanceThreshold)
	case TriggerTransactionMatch:
		t.TransactionMatch = &TransactionMatchTrigger{}
		return json.Unmarshal(data, t.TransactionMatch)
	default:
		return fmt.Errorf("unknown trigger type %q", head.Type)
	}
}

func (t TriggerConditions) MarshalJSON() ([]byte, error) {
	switch t.Type {
	case TriggerScheduled:
		return marshalTagged(t.Type, t.Scheduled)
	case TriggerBalanceThreshold:
		return marshalTagged(t.Type, t.BalanceThreshold)
	case TriggerTransactionMatch:
		return marshalTagged(t.Type, t.TransactionMatch)
	default:
		return nil, fmt.Errorf("unknown trigger type %q", t.Type)
	}
}

const (
	ActionTransfer  = "transfer"
	ActionPayBill   = "pay_bill"
	ActionSendAlert = "send_alert"
)

type TransferAction struct {
	FromAccount int64   `json:"from_account"`
	ToAccount   int64   `json:"to_account"`
	Amount      float64 `json:"amount"`
}

type PayBillAction struct {
	SubscriptionID int64 `json:"subscription_id"`
	AccountID      int64 `json:"account_id"`
}

type SendAlertAction struct {
	Message string `json:"message"`
}

// ActionConfig is a tagged union; exactly one variant is non-nil, matching
// Type.
type ActionConfig struct {
	Type      string
	Transfer  *TransferAction
	PayBill   *PayBillAction
	SendAlert *SendAlertAction
}

func (a *ActionConfig) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	a.Type = head.Type
	switch head.Type {
	case ActionTransfer:
		a.Transfer = &TransferAction{}
		return json.Unmarshal(data, a.Transfer)
	case ActionPayBill:
		a.PayBill = &PayBillAction{}
		return json.Unmarshal(data, a.PayBill)
	case ActionSendAlert:
		a.SendAlert = &SendAlertAction{}
		return json.Unmarshal(data, a.SendAlert)
	default:
		return fmt.Errorf("unknown action type %q", head.Type)
	}
}

func (a ActionConfig) MarshalJSON() ([]byte, error) {
	switch a.Type {
	case ActionTransfer:
		return marshalTagged(a.Type, a.Transfer)
	case ActionPayBill:
		return marshalTagged(a.Type, a.PayBill)
	case ActionSendAlert:
		return marshalTagged(a.Type, a.SendAlert)
	default:
		return nil, fmt.Errorf("unknown action type %q", a.Type)
	}
}

// marshalTagged flattens a variant struct and injects the type discriminant.
func marshalTagged(typ string, variant interface{}) ([]byte, error) {
	body, err := json.Marshal(variant)
	if err != nil {
		return nil, err
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	fields["type"] = typ
	return json.Marshal(fields)
}
