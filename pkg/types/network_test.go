package types

import "testing"

func TestNetworkByName(t *testing.T) {
	tests := []struct {
		name  string
		want  Network
		valid bool
	}{
		{"mainnet", Mainnet(), true},
		{"", Mainnet(), true},
		{"Testnet", Testnet(), true},
		{"preprod", Preprod(), true},
		{" preview ", Preview(), true},
		{"devnet", Network{}, false},
	}
	for _, tt := range tests {
		got, err := NetworkByName(tt.name)
		if (err == nil) != tt.valid {
			t.Errorf("NetworkByName(%q) error = %v, valid = %v", tt.name, err, tt.valid)
			continue
		}
		if got != tt.want {
			t.Errorf("NetworkByName(%q) = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestNetwork_AddressHRP(t *testing.T) {
	if hrp := Mainnet().AddressHRP(); hrp != "addr" {
		t.Errorf("mainnet HRP = %q", hrp)
	}
	for _, n := range []Network{Testnet(), Preprod(), Preview()} {
		if hrp := n.AddressHRP(); hrp != "addr_test" {
			t.Errorf("%s HRP = %q", n, hrp)
		}
	}
}

func TestNetwork_Validate(t *testing.T) {
	if err := Mainnet().Validate(); err != nil {
		t.Errorf("Mainnet().Validate() = %v", err)
	}
	if err := (Network{NetworkID: 16}).Validate(); err == nil {
		t.Error("network id 16 should not validate")
	}
}

func TestNetwork_String(t *testing.T) {
	if s := Preprod().String(); s != "preprod" {
		t.Errorf("String() = %q", s)
	}
	if s := (Network{NetworkID: 3, ProtocolMagic: 42}).String(); s != "network(3/42)" {
		t.Errorf("String() = %q", s)
	}
}
