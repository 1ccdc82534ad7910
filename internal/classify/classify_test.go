package classify

import "testing"

func TestIsTravelTimeQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"dari Jakarta ke Bandung berapa jam?", true},
		{"jarak Surabaya Malang", true},
		{"berapa lama ke bandara?", true},
		{"hotel murah di Bali", false},
		{"apa kabar", false},
	}
	for _, tt := range tests {
		if got := IsTravelTimeQuery(tt.query); got != tt.want {
			t.Errorf("IsTravelTimeQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestIsNearbyQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"rumah sakit terdekat", true},
		{"restoran enak di daerah Senopati", true},
		{"Bank BCA cabang Sudirman", true},
		{"siapa presiden indonesia", false},
	}
	for _, tt := range tests {
		if got := IsNearbyQuery(tt.query); got != tt.want {
			t.Errorf("IsNearbyQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestIsLocationQuery(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Saya akan mencari alamat tersebut untuk Anda", true},
		{"Lokasi tepatnya berada di Jakarta Selatan", true},
		{"Cuaca hari ini cerah", false},
	}
	for _, tt := range tests {
		if got := IsLocationQuery(tt.text); got != tt.want {
			t.Errorf("IsLocationQuery(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractTravelLocations(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantFrom string
		wantTo   string
	}{
		{
			name:     "dari-ke with question tail",
			query:    "dari Jakarta ke Bandung berapa jam?",
			wantFrom: "Jakarta",
			wantTo:   "Bandung",
		},
		{
			name:     "dari-ke plain",
			query:    "dari Monas ke Kota Tua",
			wantFrom: "Monas",
			wantTo:   "Kota Tua",
		},
		{
			name:     "implicit origin before ke",
			query:    "Surabaya ke Malang berapa lama",
			wantFrom: "Surabaya",
			wantTo:   "Malang",
		},
		{
			name:     "no pattern",
			query:    "jarak antara dua kota",
			wantFrom: "",
			wantTo:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := ExtractTravelLocations(tt.query)
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("ExtractTravelLocations(%q) = (%q, %q), want (%q, %q)",
					tt.query, from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}
