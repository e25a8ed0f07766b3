package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/golang_services/internal/webhook_gateway_service/domain"
)

const textMessagePayload = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "entry-1",
		"changes": [{
			"field": "messages",
			"value": {
				"messaging_product": "whatsapp",
				"metadata": {"display_phone_number": "15550009999", "phone_number_id": "phone-1"},
				"contacts": [{"profile": {"name": "Jane Doe"}, "wa_id": "15550001111"}],
				"messages": [{
					"from": "15550001111",
					"id": "wamid.msg-1",
					"timestamp": "1700000000",
					"type": "text",
					"text": {"body": "Hello TaskFlow"}
				}]
			}
		}]
	}]
}`

func TestParseEvents_TextMessage(t *testing.T) {
	events := ParseEvents([]byte(textMessagePayload))
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, domain.KindMessage, ev.Kind)
	assert.Equal(t, domain.MessageTypeText, ev.MessageType)
	assert.Equal(t, "wamid.msg-1", ev.MessageID)
	assert.Equal(t, "15550001111", ev.SenderAddress)
	assert.Equal(t, "Jane Doe", ev.SenderName)
	assert.Equal(t, "Hello TaskFlow", ev.BodyText)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), ev.Timestamp)
}

func TestParseEvents_UnknownObject(t *testing.T) {
	events := ParseEvents([]byte(`{"object": "instagram_account", "entry": []}`))
	require.Len(t, events, 1)
	assert.Equal(t, domain.KindUnrecognized, events[0].Kind)
}

func TestParseEvents_MalformedJSON(t *testing.T) {
	events := ParseEvents([]byte(`{not json`))
	require.Len(t, events, 1)
	assert.Equal(t, domain.KindUnrecognized, events[0].Kind)
}

func TestParseEvents_EmptyEntries(t *testing.T) {
	events := ParseEvents([]byte(`{"object": "whatsapp_business_account", "entry": []}`))
	require.Len(t, events, 1)
	assert.Equal(t, domain.KindUnrecognized, events[0].Kind)
}

func TestParseEvents_StatusUpdate(t *testing.T) {
	payload := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"field": "messages",
				"value": {
					"statuses": [{
						"id": "wamid.sent-1",
						"status": "delivered",
						"timestamp": "1700000100",
						"recipient_id": "15550001111"
					}]
				}
			}]
		}]
	}`

	events := ParseEvents([]byte(payload))
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, domain.KindStatusUpdate, ev.Kind)
	assert.Equal(t, "wamid.sent-1", ev.MessageID)
	assert.Equal(t, "delivered", ev.Status)
	assert.Equal(t, time.Unix(1700000100, 0).UTC(), ev.Timestamp)
}

func TestParseEvents_MediaAndButton(t *testing.T) {
	payload := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"field": "messages",
				"value": {
					"messages": [
						{"from": "1555", "id": "m1", "timestamp": "1700000000", "type": "image",
						 "image": {"id": "media-img-1", "mime_type": "image/jpeg"}},
						{"from": "1555", "id": "m2", "timestamp": "1700000001", "type": "document",
						 "document": {"id": "media-doc-1", "filename": "invoice.pdf"}},
						{"from": "1555", "id": "m3", "timestamp": "1700000002", "type": "button",
						 "button": {"text": "Approve", "payload": "approve-task"}},
						{"from": "1555", "id": "m4", "timestamp": "1700000003", "type": "reaction"}
					]
				}
			}]
		}]
	}`

	events := ParseEvents([]byte(payload))
	require.Len(t, events, 4)

	assert.Equal(t, domain.MessageTypeImage, events[0].MessageType)
	assert.Equal(t, "media-img-1", events[0].MediaRef)

	assert.Equal(t, domain.MessageTypeDocument, events[1].MessageType)
	assert.Equal(t, "media-doc-1", events[1].MediaRef)

	assert.Equal(t, domain.MessageTypeButton, events[2].MessageType)
	assert.Equal(t, "Approve", events[2].BodyText)

	assert.Equal(t, domain.MessageTypeUnsupported, events[3].MessageType)
}

func TestParseEvents_PreservesArrayOrder(t *testing.T) {
	payload := `{
		"object": "whatsapp_business_account",
		"entry": [
			{"changes": [{"field": "messages", "value": {"messages": [
				{"from": "1555", "id": "first", "timestamp": "1", "type": "text", "text": {"body": "a"}},
				{"from": "1555", "id": "second", "timestamp": "2", "type": "text", "text": {"body": "b"}}
			]}}]},
			{"changes": [{"field": "messages", "value": {"messages": [
				{"from": "1555", "id": "third", "timestamp": "3", "type": "text", "text": {"body": "c"}}
			]}}]}
		]
	}`

	events := ParseEvents([]byte(payload))
	require.Len(t, events, 3)
	assert.Equal(t, "first", events[0].MessageID)
	assert.Equal(t, "second", events[1].MessageID)
	assert.Equal(t, "third", events[2].MessageID)
}

func TestParseEvents_SkipsNonMessageChanges(t *testing.T) {
	payload := `{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [
				{"field": "account_update", "value": {}},
				{"field": "messages", "value": {"messages": [
					{"from": "1555", "id": "m1", "timestamp": "1", "type": "text", "text": {"body": "hi"}}
				]}}
			]
		}]
	}`

	events := ParseEvents([]byte(payload))
	require.Len(t, events, 1)
	assert.Equal(t, "m1", events[0].MessageID)
}
