package speech

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	header := NewHeader(FullClientRequest, NoSequenceNumber, JSONSerialization, GzipCompression)

	encoded := header.Encode()
	if len(encoded) != 4 {
		t.Fatalf("header length = %d, want 4", len(encoded))
	}

	decoded, err := DecodeHeader(encoded)
	if err != nil {
		t.Fatalf("DecodeHeader err: %v", err)
	}
	if decoded.MessageType != FullClientRequest {
		t.Errorf("message type = %04b", decoded.MessageType)
	}
	if decoded.SerializationMethod != JSONSerialization {
		t.Errorf("serialization = %04b", decoded.SerializationMethod)
	}
	if decoded.CompressionMethod != GzipCompression {
		t.Errorf("compression = %04b", decoded.CompressionMethod)
	}
}

func TestDecodeHeaderRejectsShortData(t *testing.T) {
	if _, err := DecodeHeader([]byte{0x11, 0x10}); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestDecodeHeaderRejectsUnknownVersion(t *testing.T) {
	data := []byte{0x21, 0x10, 0x10, 0x00} // version 2
	if _, err := DecodeHeader(data); err == nil {
		t.Fatal("expected error for unsupported protocol version")
	}
}

func TestMessageRoundTrip(t *testing.T) {
	payload := []byte(`{"text":"안녕"}`)
	msg := CreateFullClientRequest(payload, NoCompression)

	encoded, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage err: %v", err)
	}

	decoded, err := DecodeMessage(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("DecodeMessage err: %v", err)
	}
	if decoded.Header.MessageType != FullClientRequest {
		t.Errorf("message type = %04b", decoded.Header.MessageType)
	}
	if !bytes.Equal(decoded.Payload, payload) {
		t.Errorf("payload = %q, want %q", decoded.Payload, payload)
	}
	if decoded.IsLastPacket() {
		t.Error("opening request must not read as last packet")
	}
}

func TestDecodeMessageWithSequence(t *testing.T) {
	header := NewHeader(AudioOnlyServerResponse, NegativeSequenceNumber, NoSerialization, NoCompression)
	payload := []byte("final-audio-chunk")

	var buf bytes.Buffer
	buf.Write(header.Encode())
	binary.Write(&buf, binary.BigEndian, uint32(0xFFFFFFFF)) // sequence -1
	binary.Write(&buf, binary.BigEndian, uint32(len(payload)))
	buf.Write(payload)

	msg, err := DecodeMessage(&buf)
	if err != nil {
		t.Fatalf("DecodeMessage err: %v", err)
	}
	if msg.Sequence != -1 {
		t.Errorf("sequence = %d, want -1", msg.Sequence)
	}
	if !msg.IsLastPacket() {
		t.Error("negative sequence frame must read as last packet")
	}
	if !bytes.Equal(msg.Payload, payload) {
		t.Errorf("payload = %q", msg.Payload)
	}
}

func TestDecodeMessageWithSessionEvent(t *testing.T) {
	header := NewHeader(FullServerResponse, WithEvent, JSONSerialization, NoCompression)
	sessionID := "sess-42"
	payload := []byte(`{}`)

	var buf bytes.Buffer
	buf.Write(header.Encode())
	binary.Write(&buf, binary.BigEndian, int32(EventTypeSessionFinished))
	binary.Write(&buf, binary.BigEndian, uint32(len(sessionID)))
	buf.WriteString(sessionID)
	binary.Write(&buf, binary.BigEndian, uint32(len(payload)))
	buf.Write(payload)

	msg, err := DecodeMessage(&buf)
	if err != nil {
		t.Fatalf("DecodeMessage err: %v", err)
	}
	if msg.EventType != EventTypeSessionFinished {
		t.Errorf("event type = %d, want %d", msg.EventType, EventTypeSessionFinished)
	}
	if msg.SessionID != sessionID {
		t.Errorf("session id = %q, want %q", msg.SessionID, sessionID)
	}
}

func TestDecodeMessageWithConnectionEvent(t *testing.T) {
	header := NewHeader(FullServerResponse, WithEvent, JSONSerialization, NoCompression)
	connectID := "conn-7"

	var buf bytes.Buffer
	buf.Write(header.Encode())
	binary.Write(&buf, binary.BigEndian, int32(EventTypeConnectionStarted))
	binary.Write(&buf, binary.BigEndian, uint32(len(connectID)))
	buf.WriteString(connectID)
	binary.Write(&buf, binary.BigEndian, uint32(0))

	msg, err := DecodeMessage(&buf)
	if err != nil {
		t.Fatalf("DecodeMessage err: %v", err)
	}
	if msg.ConnectID != connectID {
		t.Errorf("connect id = %q, want %q", msg.ConnectID, connectID)
	}
	if msg.SessionID != "" {
		t.Errorf("connection events carry no session id, got %q", msg.SessionID)
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	header := NewHeader(ErrorMessage, NoSequenceNumber, JSONSerialization, NoCompression)
	payload := []byte(`{"error":"quota exceeded"}`)

	var buf bytes.Buffer
	buf.Write(header.Encode())
	binary.Write(&buf, binary.BigEndian, uint32(45000001))
	binary.Write(&buf, binary.BigEndian, uint32(len(payload)))
	buf.Write(payload)

	msg, err := DecodeMessage(&buf)
	if err != nil {
		t.Fatalf("DecodeMessage err: %v", err)
	}
	if msg.ErrorCode != 45000001 {
		t.Errorf("error code = %d", msg.ErrorCode)
	}
	if !bytes.Equal(msg.Payload, payload) {
		t.Errorf("payload = %q", msg.Payload)
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	original := []byte(`{"text":"식물이 말해요","speaker":"sophie"}`)

	compressed, err := CompressPayload(original, GzipCompression)
	if err != nil {
		t.Fatalf("CompressPayload err: %v", err)
	}
	restored, err := DecompressPayload(compressed, GzipCompression)
	if err != nil {
		t.Fatalf("DecompressPayload err: %v", err)
	}
	if !bytes.Equal(restored, original) {
		t.Fatalf("round trip mismatch: %q", restored)
	}

	// NoCompression passes data through untouched.
	passthrough, err := CompressPayload(original, NoCompression)
	if err != nil {
		t.Fatalf("CompressPayload err: %v", err)
	}
	if !bytes.Equal(passthrough, original) {
		t.Fatal("NoCompression must not alter data")
	}
}

func TestNormalizeVoiceAlias(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"neutral", "multi_female_sophie_conversation_wvae_bigtts"},
		{"Neutral", "multi_female_sophie_conversation_wvae_bigtts"},
		{"bright", "multi_male_jingqiangkanye_moon_bigtts"},
		{"custom_speaker_id", "custom_speaker_id"},
		{"  warm  ", "multi_female_sophie_conversation_wvae_bigtts"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeVoiceAlias(tc.in); got != tc.want {
			t.Errorf("NormalizeVoiceAlias(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
