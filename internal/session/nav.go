package session

import "h2o-bounty/pkg/aptos"

type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Nav is the navigation shell for the current connection state.
type Nav struct {
	Connected    bool       `json:"connected"`
	Address      string     `json:"address,omitempty"`
	ShortAddress string     `json:"short_address,omitempty"`
	AvatarText   string     `json:"avatar_text,omitempty"`
	Menu         []MenuItem `json:"menu"`
}

var (
	baseMenu = []MenuItem{
		{Label: "H2O Bounty", Path: "/"},
		{Label: "Create Board", Path: "/create-board"},
	}
	accountMenu = []MenuItem{
		{Label: "Create Profile", Path: "/create-profile"},
		{Label: "Profile", Path: "/profile"},
		{Label: "Settings", Path: "/settings"},
		{Label: "Disconnect", Path: "/api/v1/session/disconnect"},
	}
	connectItem = MenuItem{Label: "Connect Wallet", Path: "/api/v1/session/challenge"}
)

// ShortAddress keeps the first 6 and last 5 characters of an address.
func ShortAddress(address string) string {
	if len(address) <= 11 {
		return address
	}
	return address[:6] + "..." + address[len(address)-5:]
}

// AvatarText is the first two characters of the short address.
func AvatarText(address string) string {
	short := ShortAddress(address)
	if len(short) < 2 {
		return short
	}
	return short[:2]
}

// NavFor builds the shell; a nil claims value means no wallet is connected.
func NavFor(claims *Claims) Nav {
	menu := append([]MenuItem{}, baseMenu...)
	if claims == nil {
		return Nav{Menu: append(menu, connectItem)}
	}
	address := aptos.NormalizeAddress(claims.Address)
	return Nav{
		Connected:    true,
		Address:      address,
		ShortAddress: ShortAddress(address),
		AvatarText:   AvatarText(address),
		Menu:         append(menu, accountMenu...),
	}
}
