package helpers

import "github.com/gin-gonic/gin"

// Form DTOs
type NewListingForm struct {
	Title         string  `form:"title" binding:"required"`
	Description   string  `form:"description"`
	StartingPrice float64 `form:"starting_price" binding:"required,gt=0"`
}

type BidForm struct {
	Amount float64 `form:"amount" binding:"required,gt=0"`
}

// PreservedListingForm carries the raw submitted field values back into a
// re-rendered form, so a failed submission keeps what the user typed.
type PreservedListingForm struct {
	Title         string
	Description   string
	StartingPrice string
}

// PreserveListingForm reads the raw listing form fields off the request
func PreserveListingForm(c *gin.Context) PreservedListingForm {
	return PreservedListingForm{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		StartingPrice: c.PostForm("starting_price"),
	}
}
