package domain

// AdPlatform identifica a plataforma de anúncios de uma campanha
type AdPlatform string

const (
	AdPlatformGoogle   AdPlatform = "google"
	AdPlatformFacebook AdPlatform = "facebook"
	AdPlatformLinkedIn AdPlatform = "linkedin"
	AdPlatformTwitter  AdPlatform = "twitter"
)

// AdPlatforms é o conjunto fixo de plataformas suportadas
var AdPlatforms = []AdPlatform{
	AdPlatformGoogle,
	AdPlatformFacebook,
	AdPlatformLinkedIn,
	AdPlatformTwitter,
}

// IsValidAdPlatform verifica se a plataforma pertence ao conjunto suportado
func IsValidAdPlatform(platform AdPlatform) bool {
	for _, p := range AdPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}

// AdCampaign representa uma campanha de anúncios de uma plataforma
type AdCampaign struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Platform    AdPlatform `json:"platform"`
	Budget      float64    `json:"budget"`
	Spend       float64    `json:"spend"`
	Impressions int64      `json:"impressions"`
	Clicks      int64      `json:"clicks"`
	Conversions int64      `json:"conversions"`
	CPM         float64    `json:"cpm"`
	CPC         float64    `json:"cpc"`
	ROAS        float64    `json:"roas"`
}

// AdCampaignSpec contém os dados necessários para criar uma nova campanha
type AdCampaignSpec struct {
	Name        string     `json:"name"`
	Platform    AdPlatform `json:"platform"`
	Budget      float64    `json:"budget"`
	Spend       float64    `json:"spend"`
	Impressions int64      `json:"impressions"`
	Clicks      int64      `json:"clicks"`
	Conversions int64      `json:"conversions"`
	CPM         float64    `json:"cpm"`
	CPC         float64    `json:"cpc"`
	ROAS        float64    `json:"roas"`
}
