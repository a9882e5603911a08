package models

import (
	"encoding/json"
	"testing"
)

func TestTriggerConditionsDecode(t *testing.T) {
	var trigger TriggerConditions
	if err := json.Unmarshal([]byte(`{"type":"scheduled","day":15,"time":"09:00"}`), &trigger); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if trigger.Type != TriggerScheduled {
		t.Errorf("Type = %q, want %q", trigger.Type, TriggerScheduled)
	}
	if trigger.Scheduled == nil {
		t.Fatal("Scheduled variant is nil")
	}
	if trigger.Scheduled.Day != 15 || trigger.Scheduled.Time != "09:00" {
		t.Errorf("Scheduled = %+v, want day 15 at 09:00", trigger.Scheduled)
	}
	if trigger.BalanceThreshold != nil || trigger.TransactionMatch != nil {
		t.Error("other variants should be nil")
	}
}

func TestTriggerConditionsBalanceThreshold(t *testing.T) {
	var trigger TriggerConditions
	if err := json.Unmarshal([]byte(`{"type":"balance_threshold","account_id":3,"threshold":1000.50}`), &trigger); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if trigger.BalanceThreshold == nil {
		t.Fatal("BalanceThreshold variant is nil")
	}
	if trigger.BalanceThreshold.AccountID != 3 || trigger.BalanceThreshold.Threshold != 1000.50 {
		t.Errorf("BalanceThreshold = %+v", trigger.BalanceThreshold)
	}
}

func TestTriggerConditionsUnknownTypeRejected(t *testing.T) {
	var trigger TriggerConditions
	err := json.Unmarshal([]byte(`{"type":"on_full_moon"}`), &trigger)
	if err == nil {
		t.Fatal("expected error for unknown trigger type")
	}
}

func TestTriggerConditionsRoundTrip(t *testing.T) {
	inputs := []string{
		`{"type":"scheduled","day":1,"time":"08:30"}`,
		`{"type":"balance_threshold","account_id":7,"threshold":500}`,
		`{"type":"transaction_match","merchant":"Netflix","amount":199}`,
		`{"type":"transaction_match","merchant":"Uber"}`,
	}
	for _, input := range inputs {
		var trigger TriggerConditions
		if err := json.Unmarshal([]byte(input), &trigger); err != nil {
			t.Fatalf("unmarshal %s: %v", input, err)
		}
		encoded, err := json.Marshal(trigger)
		if err != nil {
			t.Fatalf("marshal %s: %v", input, err)
		}

		var again TriggerConditions
		if err := json.Unmarshal(encoded, &again); err != nil {
			t.Fatalf("re-unmarshal %s: %v", encoded, err)
		}
		if again.Type != trigger.Type {
			t.Errorf("round trip changed type: %q -> %q", trigger.Type, again.Type)
		}
	}
}

func TestActionConfigDecode(t *testing.T) {
	var action ActionConfig
	input := `{"type":"transfer","from_account":1,"to_account":2,"amount":500}`
	if err := json.Unmarshal([]byte(input), &action); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if action.Type != ActionTransfer {
		t.Errorf("Type = %q, want %q", action.Type, ActionTransfer)
	}
	if action.Transfer == nil {
		t.Fatal("Transfer variant is nil")
	}
	if action.Transfer.FromAccount != 1 || action.Transfer.ToAccount != 2 || action.Transfer.Amount != 500 {
		t.Errorf("Transfer = %+v", action.Transfer)
	}
}

func TestActionConfigMarshalInjectsType(t *testing.T) {
	action := ActionConfig{
		Type:      ActionSendAlert,
		SendAlert: &SendAlertAction{Message: "saldo bajo"},
	}
	encoded, err := json.Marshal(action)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if fields["type"] != "send_alert" {
		t.Errorf("type field = %v, want send_alert", fields["type"])
	}
	if fields["message"] != "saldo bajo" {
		t.Errorf("message field = %v", fields["message"])
	}
}

func TestActionConfigUnknownTypeRejected(t *testing.T) {
	var action ActionConfig
	if err := json.Unmarshal([]byte(`{"type":"launch_rocket"}`), &action); err == nil {
		t.Fatal("expected error for unknown action type")
	}
	if _, err := json.Marshal(ActionConfig{Type: "launch_rocket"}); err == nil {
		t.Fatal("expected error marshalling unknown action type")
	}
}
