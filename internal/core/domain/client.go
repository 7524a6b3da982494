package domain

type Client struct {
	ID    int    `db:"clientid"`
	Name  string `db:"name"`
	Email string `db:"email"`
}

func NewClient(name, email string) *Client {
	return &Client{
		Name:  name,
		Email: email,
	}
}
