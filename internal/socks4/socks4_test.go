package socks4

import (
	"bytes"
	"testing"
)

func TestRequestMarshalBinary(t *testing.T) {
	t.Parallel()

	req := Request{Port: 0x1f90, Addr: [4]byte{192, 0, 2, 17}}

	b, err := req.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{0x04, 0x01, 0x1f, 0x90, 192, 0, 2, 17, 0x00}
	if !bytes.Equal(b, want) {
		t.Fatalf("got % x want % x", b, want)
	}
}

func TestReplyUnmarshalBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []byte
		want    Status
		granted bool
		wantErr bool
	}{
		{
			name:    "granted",
			input:   []byte{0x00, 0x5a, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			want:    StatusGranted,
			granted: true,
		},
		{
			name:  "rejected",
			input: []byte{0x00, 0x5b, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			want:  StatusRejected,
		},
		{
			name:  "no identd",
			input: []byte{0x00, 0x5c, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			want:  StatusNoIdentd,
		},
		{
			name:  "identd mismatch",
			input: []byte{0x00, 0x5d, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			want:  StatusIdentdMismatch,
		},
		{
			name:  "arbitrary non-grant byte",
			input: []byte{0x00, 0x42, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			want:  Status(0x42),
		},
		{
			name:  "bound address fields are ignored",
			input: []byte{0x04, 0x5a, 0x1f, 0x90, 10, 0, 0, 1},
			want:  StatusGranted,
		},
		{
			name:    "short",
			input:   []byte{0x00, 0x5a, 0x00},
			wantErr: true,
		},
		{
			name:    "long",
			input:   []byte{0x00, 0x5a, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			wantErr: true,
		},
		{
			name:    "empty",
			input:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rep Reply
			err := rep.UnmarshalBinary(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if rep.Status != tt.want {
				t.Fatalf("status=0x%02x want 0x%02x", byte(rep.Status), byte(tt.want))
			}
			if rep.Status.Granted() != (tt.want == StatusGranted) {
				t.Fatalf("Granted()=%v for status 0x%02x", rep.Status.Granted(), byte(rep.Status))
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	t.Parallel()

	if got := StatusGranted.String(); got != "request granted" {
		t.Fatalf("got %q", got)
	}
	if got := Status(0x99).String(); got != "unknown status 0x99" {
		t.Fatalf("got %q", got)
	}
}
