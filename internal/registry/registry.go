// Package registry mantém o estado em memória dos fluxos de receita e dos
// submodelos de canal. Todo acesso é serializado por um único mutex; cada
// operação composta (ler-modificar-gravar) executa inteira sob o lock.
package registry

import (
	"sync"

	"github.com/vfg2006/revenue-engine-api/internal/domain"
)

type Registry struct {
	mu sync.RWMutex

	streams     map[string]*domain.RevenueStream
	streamOrder []string

	tiers     map[string]*domain.SubscriptionTier
	tierOrder []string

	programs     map[string]*domain.AffiliateProgram
	programOrder []string

	campaigns     map[string]*domain.AdCampaign
	campaignOrder []string

	marketplace *domain.MarketplaceMetrics
}

// New cria um registro já populado com os dados de seed: os cinco fluxos
// fixos, os planos de assinatura, os programas de afiliados e o registro
// único do marketplace.
func New() *Registry {
	r := &Registry{
		streams:   make(map[string]*domain.RevenueStream),
		tiers:     make(map[string]*domain.SubscriptionTier),
		programs:  make(map[string]*domain.AffiliateProgram),
		campaigns: make(map[string]*domain.AdCampaign),
	}

	r.seed()

	return r
}

func (r *Registry) seed() {
	streams := []*domain.RevenueStream{
		{ID: "subscriptions", Name: "Assinaturas", Kind: domain.ChannelSubscription, TargetRevenue: 15000, GrowthRate: 0.15, Margin: 0.85, Status: domain.StreamStatusActive},
		{ID: "advertising", Name: "Publicidade", Kind: domain.ChannelAdvertising, TargetRevenue: 8000, GrowthRate: 0.12, Margin: 0.70, Status: domain.StreamStatusActive},
		{ID: "affiliates", Name: "Afiliados", Kind: domain.ChannelAffiliate, TargetRevenue: 5000, GrowthRate: 0.20, Margin: 0.90, Status: domain.StreamStatusActive},
		{ID: "marketplace", Name: "Marketplace", Kind: domain.ChannelMarketplace, TargetRevenue: 12000, GrowthRate: 0.18, Margin: 0.25, Status: domain.StreamStatusActive},
		{ID: "consulting", Name: "Consultoria", Kind: domain.ChannelConsulting, TargetRevenue: 10000, GrowthRate: 0.10, Margin: 0.95, Status: domain.StreamStatusActive},
	}
	for _, s := range streams {
		r.streams[s.ID] = s
		r.streamOrder = append(r.streamOrder, s.ID)
	}

	tiers := []*domain.SubscriptionTier{
		{ID: "starter", Name: "Starter", Price: 29, Features: []string{"dashboards", "relatorios-basicos"}, PriceReference: "price_starter_monthly", TargetUsers: 500, ConversionRate: 0.08},
		{ID: "professional", Name: "Professional", Price: 99, Features: []string{"dashboards", "relatorios-avancados", "api"}, PriceReference: "price_professional_monthly", TargetUsers: 200, ConversionRate: 0.05},
		{ID: "enterprise", Name: "Enterprise", Price: 299, Features: []string{"dashboards", "relatorios-avancados", "api", "suporte-dedicado"}, PriceReference: "price_enterprise_monthly", TargetUsers: 50, ConversionRate: 0.03},
	}
	for _, t := range tiers {
		r.tiers[t.ID] = t
		r.tierOrder = append(r.tierOrder, t.ID)
	}

	programs := []*domain.AffiliateProgram{
		{ID: "content-creators", Name: "Criadores de Conteúdo", Commission: 20, ActiveAffiliates: 35},
		{ID: "agencies", Name: "Agências Parceiras", Commission: 25, ActiveAffiliates: 12},
	}
	for _, p := range programs {
		r.programs[p.ID] = p
		r.programOrder = append(r.programOrder, p.ID)
	}

	r.marketplace = &domain.MarketplaceMetrics{
		CommissionRate: 0.15,
		ActiveSellers:  48,
		ActiveBuyers:   320,
	}
}

// UpsertStream insere ou substitui um fluxo de receita, preservando a ordem
// de inserção para fluxos já conhecidos. Retorna true quando o fluxo é novo.
func (r *Registry) UpsertStream(stream domain.RevenueStream) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stream.CurrentRevenue < 0 {
		stream.CurrentRevenue = 0
	}
	if stream.TargetRevenue < 0 {
		stream.TargetRevenue = 0
	}

	_, exists := r.streams[stream.ID]
	if !exists {
		r.streamOrder = append(r.streamOrder, stream.ID)
	}
	r.streams[stream.ID] = &stream
	return !exists
}

// GetStream retorna uma cópia do fluxo indicado
func (r *Registry) GetStream(id string) (domain.RevenueStream, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stream, ok := r.streams[id]
	if !ok {
		return domain.RevenueStream{}, false
	}
	return *stream, true
}

// AllStreams retorna cópias de todos os fluxos na ordem de inserção
func (r *Registry) AllStreams() []*domain.RevenueStream {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.allStreamsLocked()
}

func (r *Registry) allStreamsLocked() []*domain.RevenueStream {
	streams := make([]*domain.RevenueStream, 0, len(r.streamOrder))
	for _, id := range r.streamOrder {
		copied := *r.streams[id]
		streams = append(streams, &copied)
	}
	return streams
}

// addStreamRevenueLocked soma delta à receita corrente do fluxo do canal,
// com piso em zero. Chamador deve deter o lock.
func (r *Registry) addStreamRevenueLocked(kind domain.ChannelKind, delta float64) {
	for _, id := range r.streamOrder {
		stream := r.streams[id]
		if stream.Kind != kind {
			continue
		}
		stream.CurrentRevenue += delta
		if stream.CurrentRevenue < 0 {
			stream.CurrentRevenue = 0
		}
		return
	}
}

// Tier retorna uma cópia do plano de assinatura indicado
func (r *Registry) Tier(id string) (domain.SubscriptionTier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tier, ok := r.tiers[id]
	if !ok {
		return domain.SubscriptionTier{}, false
	}
	return *tier, true
}

// AllTiers retorna cópias dos planos na ordem de inserção
func (r *Registry) AllTiers() []*domain.SubscriptionTier {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tiers := make([]*domain.SubscriptionTier, 0, len(r.tierOrder))
	for _, id := range r.tierOrder {
		copied := *r.tiers[id]
		tiers = append(tiers, &copied)
	}
	return tiers
}

// MutateTier aplica fn ao plano indicado e soma o delta de receita retornado
// ao fluxo de assinaturas, tudo sob o mesmo lock. Retorna false se o plano
// não existir.
func (r *Registry) MutateTier(id string, fn func(tier *domain.SubscriptionTier) (revenueDelta float64)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	tier, ok := r.tiers[id]
	if !ok {
		return false
	}

	delta := fn(tier)
	if delta != 0 {
		r.addStreamRevenueLocked(domain.ChannelSubscription, delta)
	}
	return true
}

// EachTier aplica fn a cada plano, na ordem de inserção, sob o lock
func (r *Registry) EachTier(fn func(tier *domain.SubscriptionTier)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.tierOrder {
		fn(r.tiers[id])
	}
}

// Program retorna uma cópia do programa de afiliados indicado
func (r *Registry) Program(id string) (domain.AffiliateProgram, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	program, ok := r.programs[id]
	if !ok {
		return domain.AffiliateProgram{}, false
	}
	return *program, true
}

// AllPrograms retorna cópias dos programas na ordem de inserção
func (r *Registry) AllPrograms() []*domain.AffiliateProgram {
	r.mu.RLock()
	defer r.mu.RUnlock()

	programs := make([]*domain.AffiliateProgram, 0, len(r.programOrder))
	for _, id := range r.programOrder {
		copied := *r.programs[id]
		programs = append(programs, &copied)
	}
	return programs
}

// MutateProgram aplica fn ao programa indicado e soma o delta retornado ao
// fluxo de afiliados, sob o mesmo lock. Retorna false se o programa não
// existir.
func (r *Registry) MutateProgram(id string, fn func(program *domain.AffiliateProgram) (revenueDelta float64)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	program, ok := r.programs[id]
	if !ok {
		return false
	}

	delta := fn(program)
	if delta != 0 {
		r.addStreamRevenueLocked(domain.ChannelAffiliate, delta)
	}
	return true
}

// EachProgram aplica fn a cada programa, na ordem de inserção, sob o lock
func (r *Registry) EachProgram(fn func(program *domain.AffiliateProgram)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.programOrder {
		fn(r.programs[id])
	}
}

// Marketplace retorna uma cópia do registro de métricas do marketplace
func (r *Registry) Marketplace() domain.MarketplaceMetrics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return *r.marketplace
}

// MutateMarketplace aplica fn ao registro do marketplace e soma o delta
// retornado ao fluxo do marketplace, sob o mesmo lock
func (r *Registry) MutateMarketplace(fn func(m *domain.MarketplaceMetrics) (revenueDelta float64)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delta := fn(r.marketplace)
	if delta != 0 {
		r.addStreamRevenueLocked(domain.ChannelMarketplace, delta)
	}
}

// AddCampaign armazena uma nova campanha. Retorna false se o ID já existir.
func (r *Registry) AddCampaign(campaign domain.AdCampaign) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.campaigns[campaign.ID]; exists {
		return false
	}

	if campaign.Budget < 0 {
		campaign.Budget = 0
	}

	r.campaigns[campaign.ID] = &campaign
	r.campaignOrder = append(r.campaignOrder, campaign.ID)
	return true
}

// HasCampaign verifica se uma campanha com o ID indicado já existe
func (r *Registry) HasCampaign(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.campaigns[id]
	return exists
}

// AllCampaigns retorna cópias das campanhas na ordem de inserção
func (r *Registry) AllCampaigns() []*domain.AdCampaign {
	r.mu.RLock()
	defer r.mu.RUnlock()

	campaigns := make([]*domain.AdCampaign, 0, len(r.campaignOrder))
	for _, id := range r.campaignOrder {
		copied := *r.campaigns[id]
		campaigns = append(campaigns, &copied)
	}
	return campaigns
}

// CampaignsByPlatform retorna cópias das campanhas da plataforma indicada
func (r *Registry) CampaignsByPlatform(platform domain.AdPlatform) []*domain.AdCampaign {
	r.mu.RLock()
	defer r.mu.RUnlock()

	campaigns := make([]*domain.AdCampaign, 0)
	for _, id := range r.campaignOrder {
		if r.campaigns[id].Platform != platform {
			continue
		}
		copied := *r.campaigns[id]
		campaigns = append(campaigns, &copied)
	}
	return campaigns
}

// EachCampaign aplica fn a cada campanha, na ordem de inserção, sob o lock
func (r *Registry) EachCampaign(fn func(campaign *domain.AdCampaign)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.campaignOrder {
		fn(r.campaigns[id])
	}
}
