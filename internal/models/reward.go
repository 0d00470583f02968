package models

// RewardCategory groups catalog products by price band.
type RewardCategory string

const (
	RewardEco     RewardCategory = "eco"
	RewardPremium RewardCategory = "premium"
)

// RewardProduct is an item that can be exchanged for points.
type RewardProduct struct {
	ID          string
	Name        string
	Description string
	PointsCost  int
	Category    RewardCategory
}

var rewardCatalog = []RewardProduct{
	{ID: "1", Name: "Sustainable Bamboo Pencil Set", Description: "Eco-friendly pencils made from bamboo, perfect for students and professionals", PointsCost: 400, Category: RewardEco},
	{ID: "2", Name: "Recycled Paper Notebook", Description: "High-quality notebook made from 100% recycled paper", PointsCost: 600, Category: RewardEco},
	{ID: "3", Name: "Organic Cotton Tote Bag", Description: "Reusable shopping bag made from organic cotton", PointsCost: 800, Category: RewardEco},
	{ID: "4", Name: "Solar-Powered Phone Charger", Description: "Portable solar charger for sustainable energy on the go", PointsCost: 1200, Category: RewardPremium},
	{ID: "5", Name: "Biodegradable Phone Case", Description: "Eco-friendly phone case that decomposes naturally", PointsCost: 1000, Category: RewardPremium},
	{ID: "6", Name: "Stainless Steel Water Bottle", Description: "Durable, reusable water bottle to reduce plastic waste", PointsCost: 1500, Category: RewardPremium},
	{ID: "7", Name: "Smart Plant Monitor", Description: "IoT device to monitor your plants' health and growth", PointsCost: 2500, Category: RewardPremium},
	{ID: "8", Name: "Eco-Friendly Lunch Box Set", Description: "Complete lunch box set made from sustainable materials", PointsCost: 1800, Category: RewardPremium},
}

// RewardProducts returns the reward catalog.
func RewardProducts() []RewardProduct {
	out := make([]RewardProduct, len(rewardCatalog))
	copy(out, rewardCatalog)
	return out
}

// LookupRewardProduct finds a product by id.
func LookupRewardProduct(id string) (RewardProduct, bool) {
	for _, p := range rewardCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return RewardProduct{}, false
}
