package customer

type Customer struct {
	ID      int64  `json:"customer_id"`
	UserID  *int64 `json:"user_id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Contact is the guest-supplied contact block on a checkout request.
type Contact struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Identity selects how the ordering customer is resolved: by the
// authenticated account when UserID is set, otherwise by guest contact.
type Identity struct {
	UserID *int64
	Guest  *Contact
}

func Authenticated(userID int64) Identity {
	return Identity{UserID: &userID}
}

func AsGuest(contact Contact) Identity {
	return Identity{Guest: &contact}
}

type Stats struct {
	TotalCustomers int64 `json:"total_customers"`
	NewThisMonth   int64 `json:"new_this_month"`
}
