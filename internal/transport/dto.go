package transport

type CreateUserRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Address string `json:"address" validate:"max=200"`
	Email   string `json:"email"   validate:"required,email,max=100"`
}

type UpdateUserRequest struct {
	Name    string `json:"name"    validate:"required,max=100"`
	Address string `json:"address" validate:"max=200"`
	Email   string `json:"email"   validate:"required,email,max=100"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"required,gte=0"`
}

type UpdateProductRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
}

type CreateOrderRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}
