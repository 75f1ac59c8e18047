package shopapi

const orderFields = `
	id
	code
	state
	subTotal
	subTotalWithTax
	total
	totalWithTax
	totalQuantity
	shipping
	shippingWithTax
	taxSummary { description taxRate taxTotal }
	lines {
		id
		quantity
		linePrice
		linePriceWithTax
		customFields { specialInstructions petPhotos }
		productVariant {
			id
			name
			price
			product { name slug featuredAsset { preview } }
		}
	}
`

type operation struct {
	name  string
	field string
	query string
}

var (
	opActiveOrder = operation{
		name:  "ActiveOrder",
		field: "activeOrder",
		query: `query ActiveOrder { activeOrder {` + orderFields + `} }`,
	}

	opAddItem = operation{
		name:  "AddItemToOrder",
		field: "addItemToOrder",
		query: `mutation AddItemToOrder($productVariantId: ID!, $quantity: Int!, $customFields: OrderLineCustomFieldsInput) {
	addItemToOrder(productVariantId: $productVariantId, quantity: $quantity, customFields: $customFields) {
		... on Order {` + orderFields + `}
		... on ErrorResult { errorCode message }
	}
}`,
	}

	opAdjustLine = operation{
		name:  "AdjustOrderLine",
		field: "adjustOrderLine",
		query: `mutation AdjustOrderLine($orderLineId: ID!, $quantity: Int!) {
	adjustOrderLine(orderLineId: $orderLineId, quantity: $quantity) {
		... on Order {` + orderFields + `}
		... on ErrorResult { errorCode message }
	}
}`,
	}

	opRemoveLine = operation{
		name:  "RemoveOrderLine",
		field: "removeOrderLine",
		query: `mutation RemoveOrderLine($orderLineId: ID!) {
	removeOrderLine(orderLineId: $orderLineId) {
		... on Order {` + orderFields + `}
		... on ErrorResult { errorCode message }
	}
}`,
	}

	opTransitionToAddingItems = operation{
		name:  "TransitionToAddingItems",
		field: "transitionOrderToState",
		query: `mutation TransitionToAddingItems {
	transitionOrderToState(state: "AddingItems") {
		... on Order {` + orderFields + `}
		... on OrderStateTransitionError { errorCode message }
	}
}`,
	}

	opProducts = operation{
		name:  "GetProducts",
		field: "products",
		query: `query GetProducts($options: ProductListOptions) {
	products(options: $options) {
		items {
			id slug name description
			featuredAsset { preview }
			variants {
				id sku name price currencyCode
				options { id code name group { id code name } }
			}
		}
		totalItems
	}
}`,
	}

	opProductBySlug = operation{
		name:  "GetProductBySlug",
		field: "product",
		query: `query GetProductBySlug($slug: String!) {
	product(slug: $slug) {
		id slug name description
		featuredAsset { preview }
		assets { id preview source }
		optionGroups { id code name options { id code name } }
		variants {
			id sku name price priceWithTax currencyCode stockLevel
			options { id code name group { id code name } }
		}
	}
}`,
	}

	opUploadPetPhotos = operation{
		name:  "UploadPetPhotos",
		field: "uploadPetPhotos",
		query: `mutation UploadPetPhotos($files: [Upload!]!) { uploadPetPhotos(files: $files) { id preview } }`,
	}
)
