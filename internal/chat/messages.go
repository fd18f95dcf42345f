package chat

import (
	"github.com/google/uuid"

	"github.com/vbonduro/smartbite/internal/domain"
)

// Quick action names. Transports forward only these to OnAction.
const (
	ActionViewCart  = "view_cart"
	ActionClearCart = "clear_cart"
)

// ImageRequest is the user request sent to the generator for a photo.
const ImageRequest = "Suggest a creative and delicious recipe using these ingredients"

// ImageErrorPrefix precedes the error message shown when the image flow fails.
const ImageErrorPrefix = "Error processing image: "

const (
	welcomeText = "Hello 👋 I'm your **SmartBite AI Chef**!\n\n" +
		"I can help you:\n" +
		"🍳 Suggest recipes based on your ingredients\n" +
		"📷 Detect ingredients from photos\n" +
		"🛒 Create shopping lists for missing items\n\n" +
		"💡 **Try:** Upload a photo of your fridge or tell me what ingredients you have!"
	quickActionsText = "Quick Actions:"

	detectingText    = "🔍 Detecting ingredients in your image..."
	noIngredientText = "🤷 No ingredients detected. Try a clearer photo!"
	detectedFormat   = "✅ **Detected %d ingredients:**\n%s"
	generatingText   = "👨‍🍳 Generating recipe..."
	recipeHeader     = "📸 **Recipe based on detected ingredients:**\n\n"
	suggestedDish    = "✨ **Suggested Dish:**"
	recipeImageName  = "recipe_image"

	cartUpdatedHeader = "🛒 **Shopping Cart Updated:**"
	cartViewHeader    = "🛒 **Your Shopping Cart:**"
	cartEmptyText     = "Your shopping cart is empty!"
	cartClearedText   = "🧹 Shopping cart cleared!"
	finalListHeader   = "📝 **Final Shopping List:**"
)

// QuickActions returns freshly identified view_cart and clear_cart actions.
func QuickActions() []domain.Action {
	return []domain.Action{
		{
			ID:      uuid.NewString(),
			Name:    ActionViewCart,
			Label:   "🛒 View Shopping Cart",
			Payload: map[string]any{"value": ActionViewCart},
		},
		{
			ID:      uuid.NewString(),
			Name:    ActionClearCart,
			Label:   "🧹 Clear Cart",
			Payload: map[string]any{"value": ActionClearCart},
		},
	}
}
