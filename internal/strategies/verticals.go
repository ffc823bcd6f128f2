package strategies

import (
	"github.com/j-veylop/forge-insights-tui/internal/aggregate"
	m "github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/table"
)

const (
	retentionName      = "Retention Strategy"
	retentionTitle     = "Retention Strategy Insights"
	sessionLengthTitle = "Retention Strategy: Session Length Distribution"
)

// Default returns the registry of every supported vertical.
func Default() *Registry {
	r, err := NewRegistry(
		adventure(),
		casual(),
		educational(),
		hardcore(),
		hypercasual(),
		midcore(),
		puzzle(),
		rpg(),
		shooter(),
		simulation(),
		sports(),
		strategy(),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// countBy counts rows of one event type per key value.
func countBy(eventType, key string) aggregate.Query {
	return aggregate.Query{
		Filter:        table.Equals(m.ColEventType, eventType),
		FilterColumns: []string{m.ColEventType},
		Keys:          []string{key},
		Metric:        aggregate.Count(),
	}
}

// perSession aggregates every row with a session id by session.
func perSession(metric aggregate.Metric) aggregate.Query {
	return aggregate.Query{
		Keys:        []string{m.ColSessionID},
		Metric:      metric,
		DropMissing: []string{m.ColSessionID},
	}
}

func sessionPie(metric aggregate.Metric, b aggregate.Bucketer) categories {
	return categories{src: grouped{perSession(metric)}, bucket: b, order: aggregate.OrderFrequency}
}

func startEndDurations() bounded {
	return bounded{aggregate.BoundsQuery{
		Key:       m.ColSessionID,
		TypeCol:   m.ColEventType,
		TimeCol:   m.ColClientTS,
		StartType: m.EventSessionStart,
		EndType:   m.EventSessionEnd,
	}}
}

func adventure() Vertical {
	return Vertical{Name: "adventure", Strategies: []Strategy{
		{
			Name:           "Storyline Drop-offs",
			Title:          "Storyline Drop-offs",
			XLabel:         "Narrative Stage",
			YLabel:         "Number of Drop-offs",
			Explanation:    "This chart shows where players are dropping off in the narrative. It helps identify stages or levels that need balancing or enhanced storytelling elements.",
			Recommendation: "Focus on reworking or enhancing narrative elements at stages with significant drop-offs.",
			builder:        bars{countBy(m.EventProgression, m.ColProgression02)},
		},
		{
			Name:   "Resource Usage",
			Title:  "Resource Usage Trends",
			XLabel: "Resource Type",
			YLabel: "Total Amount Used",
			Explanation: "This chart highlights which in-game resources are being used the most by players. " +
				"It provides insights into resource balancing and opportunities for creating rewarding systems.",
			Recommendation: "Introduce quests or events rewarding highly consumed resources to maintain player satisfaction.",
			builder: bars{aggregate.Query{
				Filter:        table.Equals(m.ColEventType, m.EventResource),
				FilterColumns: []string{m.ColEventType},
				Keys:          []string{m.ColCurrency},
				Metric:        aggregate.Sum(m.ColAmount),
			}},
		},
		{
			Name:  retentionName,
			Title: retentionTitle,
			Explanation: "Categorize player sessions by length to identify trends in engagement. " +
				"Short sessions might indicate casual play habits, while long ones could lead to potential burnout. " +
				"Tailor rewards for medium-length sessions and provide soft nudges for breaks during extended play to enhance overall retention.",
			Recommendation: "Introduce rewards for medium-length sessions to sustain player engagement. " +
				"For longer sessions, implement optional breaks or incentives for session continuity.",
			builder: sessionPie(aggregate.Count(), aggregate.SessionEvents),
		},
	}}
}

func casual() Vertical {
	return Vertical{Name: "casual", Strategies: []Strategy{
		{
			Name:   "Session Timing Patterns",
			Title:  "Session Timing Patterns",
			XLabel: "Hour of Day",
			YLabel: "Number of Sessions",
			Explanation: "Analyze peak playtimes to schedule in-game events or reminders that align with user activity. " +
				"For example, most users might play between 6 PM and 9 PM, indicating an optimal time for push notifications.",
			Recommendation: "Schedule in-game events during peak play hours to maximize engagement.",
			builder:        hourly{grouped{perSession(aggregate.Mean(m.ColClientTS))}},
		},
		{
			Name:   "Ad Interaction Behavior",
			Title:  "Ad Interaction Behavior",
			XLabel: "Ad Placement",
			YLabel: "Number of Interactions",
			Explanation: "Study which ad placements (e.g., pre_game, post_game) drive higher engagement and fewer drop-offs. " +
				"For instance, ads shown after level completions might perform better since users are less engaged in gameplay.",
			Recommendation: "Optimize ad placements to minimize interruptions and maximize engagement.",
			builder:        bars{countBy(m.EventAd, m.ColAdPlacement)},
		},
		{
			Name:   "Resource Usage",
			Title:  "Resource Usage Trends",
			XLabel: "Resource Type",
			YLabel: "Usage Count",
			Explanation: "This chart shows the most frequently consumed resources, like coins or gems, allowing for balanced game design. " +
				"For instance, heavily used resources can be tied to daily rewards or special events.",
			Recommendation: "Introduce challenges or events that reward commonly consumed resources to maintain engagement.",
			builder:        bars{countBy(m.EventResource, m.ColCurrency)},
		},
		{
			Name:  retentionName,
			Title: retentionTitle,
			Explanation: "Categorize player sessions by length to identify trends in engagement. " +
				"Short sessions indicate casual play, while long sessions may suggest deeper engagement or potential burnout.",
			Recommendation: "Encourage medium-length sessions through targeted incentives and provide soft nudges for breaks during long sessions.",
			builder:        categories{src: startEndDurations(), bucket: aggregate.SessionSeconds, order: aggregate.OrderFrequency},
		},
	}}
}

func educational() Vertical {
	return Vertical{Name: "educational", Strategies: []Strategy{
		{
			Name:   "Challenge Completion Rates",
			Title:  "Challenge Completion Rates",
			XLabel: "Challenge ID",
			YLabel: "Number of Completions",
			Explanation: "Identify challenges or lessons with high completion rates to design future content effectively. " +
				"For instance, if a math challenge has high engagement, replicate its structure for other topics.",
			Recommendation: "Simplify or enhance frequently failed challenges to make them more engaging.",
			builder:        bars{countBy(m.EventChallenge, m.ColProgression01)},
		},
		{
			Name:   "Session Patterns by Age Group",
			Title:  "Session Patterns by Age Group",
			XLabel: "Age Group",
			YLabel: "Number of Sessions",
			Explanation: "Analyze how different demographics engage with the content to design age-appropriate features. " +
				"For instance, younger users might prefer interactive elements, while older users may focus on detailed lessons.",
			Recommendation: "Design content to align with the preferences of each age group for higher engagement.",
			builder: bars{aggregate.Query{
				Keys:        []string{m.ColAgeGroup},
				Metric:      aggregate.Count(),
				DropMissing: []string{m.ColAgeGroup, m.ColSessionID},
			}},
		},
		{
			Name:   "Topic Popularity",
			Title:  "Topic Popularity",
			XLabel: "Topic ID",
			YLabel: "Number of Interactions",
			Explanation: "Identify the most revisited topics to prioritize future updates. " +
				"For example, history topics with high engagement could be expanded with quizzes or interactive timelines.",
			Recommendation: "Add depth to popular topics to maintain user interest.",
			builder:        bars{countBy(m.EventTopic, m.ColProgression02)},
		},
		{
			Name:  retentionName,
			Title: retentionTitle,
			Explanation: "Analyze session length categories to understand user retention patterns. " +
				"For example, short sessions may indicate casual play habits, while long sessions suggest deeper engagement.",
			Recommendation: "Develop competitive challenges and incentives to motivate retention.",
			builder:        categories{src: startEndDurations(), bucket: aggregate.SessionSeconds, order: aggregate.OrderFrequency},
		},
	}}
}

func hardcore() Vertical {
	return Vertical{Name: "hardcore", Strategies: []Strategy{
		{
			Name:   "Skill vs Progression Analysis",
			Title:  "Skill vs Progression Analysis",
			XLabel: "Progression Stage",
			YLabel: "Average Score",
			Explanation: "Assess the correlation between user progression (e.g., levels completed) and scores to identify users struggling to advance. " +
				"For instance, lower scores in early levels might indicate poorly explained mechanics or a steep learning curve.",
			Recommendation: "Provide targeted support in stages where average scores are low, such as additional tutorials or power-ups.",
			builder: bars{aggregate.Query{
				Keys:   []string{m.ColProgression01},
				Metric: aggregate.Mean(m.ColScore),
			}},
		},
		{
			Name:   "Social Dynamics",
			Title:  "Social Dynamics: Interaction Distribution",
			XLabel: "Number of Interactions per Session",
			YLabel: "Frequency",
			Explanation: "Analyze multiplayer or guild participation to identify players who are not engaging with social features. " +
				"For instance, users with zero interactions may need incentives to join guilds or participate in cooperative play.",
			Recommendation: "Encourage social interaction through exclusive rewards or guild-specific challenges.",
			builder: histogram{src: grouped{aggregate.Query{
				Filter:        table.Equals(m.ColEventType, m.EventGuildInteraction),
				FilterColumns: []string{m.ColEventType},
				Keys:          []string{m.ColSessionID},
				Metric:        aggregate.Count(),
				DropMissing:   []string{m.ColSessionID},
			}}, bins: aggregate.DefaultBins},
		},
		{
			Name:   "Transaction Analysis",
			Title:  "Transaction Analysis",
			XLabel: "Item Type",
			YLabel: "Number of Transactions",
			Explanation: "Analyze the popularity of different in-game purchases, such as consumables vs non-consumables. " +
				"For instance, a high frequency of consumable purchases might suggest opportunities for bundling or discounts.",
			Recommendation: "Optimize in-game store offerings based on the most popular item types.",
			builder:        bars{countBy(m.EventBusiness, m.ColItemType)},
		},
		{
			Name:  retentionName,
			Title: sessionLengthTitle,
			Explanation: "Analyze session lengths to identify engagement trends. " +
				"Short sessions may indicate casual play habits, while long sessions could suggest deeper engagement or potential burnout risks.",
			Recommendation: "Introduce cooldown mechanics or breaks during extended sessions to improve retention.",
			builder:        sessionPie(aggregate.Sum(m.ColSessionLength), aggregate.SessionSeconds),
		},
	}}
}

func hypercasual() Vertical {
	return Vertical{Name: "hypercasual", Strategies: []Strategy{
		{
			Name:   "Ad Viewing Drop-offs",
			Title:  "Ad Viewing Drop-offs by Placement and Action",
			XLabel: "Ad Placement",
			YLabel: "Number of Events",
			Legend: "Ad Action",
			Explanation: "This chart shows the number of ad interactions (viewed or clicked) across different ad placements. " +
				"It highlights where users are most and least engaged with ads.",
			Recommendation: "If ads drop off significantly at certain placements, consider repositioning or reducing ad frequency at those placements to improve user experience.",
			builder: groupedBars{aggregate.Query{
				Filter:        table.Equals(m.ColEventType, m.EventAd),
				FilterColumns: []string{m.ColEventType},
				Keys:          []string{m.ColAdPlacement, m.ColAdAction},
				Metric:        aggregate.Count(),
			}},
		},
		{
			Name:  "Session Length Patterns",
			Title: "Session Length Distribution",
			Explanation: "This chart displays the distribution of session lengths categorized as Short, Medium, or Long. " +
				"It provides insights into user engagement duration.",
			Recommendation: "For short sessions, consider introducing quick and engaging content. " +
				"For long sessions, monitor for potential burnout and add optional breaks or rewards.",
			builder: categories{
				src: rows{aggregate.Query{
					Filter:        table.Equals(m.ColEventType, m.EventSessionEnd),
					FilterColumns: []string{m.ColEventType},
					Metric:        aggregate.Sum(m.ColSessionLength),
				}},
				bucket: aggregate.SessionSeconds,
				order:  aggregate.OrderNatural,
			},
		},
		{
			Name:           "Content Popularity",
			Title:          "Content Popularity by Placement",
			XLabel:         "Placement",
			YLabel:         "Number of Events",
			Explanation:    "This chart shows the frequency of user interactions with different content placements, indicating which areas are most popular.",
			Recommendation: "Focus on enhancing and expanding content in the most popular placements to drive further engagement.",
			builder:        bars{countBy(m.EventProgression, m.ColAdPlacement)},
		},
		{
			Name:  retentionName,
			Title: retentionTitle,
			Explanation: "This chart identifies the most popular ad placement, " + subjectPlaceholder +
				", and provides the highest interaction count compared to the average across all placements.",
			Recommendation: "Leverage the most popular ad placement for critical in-game promotions or high-value ad campaigns to maximize engagement.",
			builder: mostPopular{
				filter:        table.Equals(m.ColEventType, m.EventAd),
				filterColumns: []string{m.ColEventType},
				column:        m.ColAdPlacement,
				label:         "Most Popular Ad Placement",
			},
		},
	}}
}

func midcore() Vertical {
	return Vertical{Name: "midcore", Strategies: []Strategy{
		{
			Name:   "Progression Bottlenecks",
			Title:  "Progression Bottlenecks",
			XLabel: "Progression Stage",
			YLabel: "Number of Users",
			Explanation: "Analyze levels or stages with high drop-off rates to adjust difficulty or provide in-game tips. " +
				"For instance, high drop-offs at 'world_2' might indicate a steep difficulty curve.",
			Recommendation: "Provide power-ups or reduce difficulty in challenging progression stages to retain players.",
			builder: bars{aggregate.Query{
				Keys:   []string{m.ColProgression01},
				Metric: aggregate.Count(),
			}},
		},
		{
			Name:  "User Segmentation",
			Title: "User Segmentation by Activity Level",
			Explanation: "Group users by their session frequency and spending habits to target less active or non-spending players. " +
				"For example, dormant players with low spending might benefit from exclusive login rewards.",
			Recommendation: "Offer personalized rewards to low-activity users to re-engage them.",
			builder: categories{
				src: grouped{aggregate.Query{
					Keys:        []string{m.ColUserID},
					Metric:      aggregate.CountValues(m.ColSessionID),
					DropMissing: []string{m.ColUserID},
				}},
				bucket: aggregate.ActivityLevel,
				order:  aggregate.OrderFrequency,
			},
		},
		{
			Name:   "Transaction Trends",
			Title:  "Transaction Trends",
			XLabel: "Item Type",
			YLabel: "Number of Transactions",
			Explanation: "Analyze the popularity of consumable and non-consumable purchases. " +
				"For example, a high volume of consumable sales might suggest opportunities for bundling or discounts.",
			Recommendation: "Introduce limited-time offers for popular item types to boost sales.",
			builder: bars{aggregate.Query{
				Keys:   []string{m.ColItemType},
				Metric: aggregate.Count(),
			}},
		},
		{
			Name:  retentionName,
			Title: sessionLengthTitle,
			Explanation: "Analyze session lengths to identify engagement trends. " +
				"Short sessions might indicate casual play habits, while long sessions could suggest fatigue or engagement issues.",
			Recommendation: "Introduce events or rewards targeting medium-length sessions to enhance retention.",
			builder:        sessionPie(aggregate.Sum(m.ColSessionLength), aggregate.SessionSeconds),
		},
	}}
}

func puzzle() Vertical {
	return Vertical{Name: "puzzle", Strategies: []Strategy{
		{
			Name:   "Level Completion Trends",
			Title:  "Level Completion Trends",
			XLabel: "Level",
			YLabel: "Number of Completions",
			Explanation: "Identify levels with unusually high fail rates and fine-tune difficulty. " +
				"For example, high failure rates in 'level_3' might indicate overly complex mechanics.",
			Recommendation: "Adjust level difficulty or provide additional hints for levels with high fail rates.",
			builder:        bars{countBy(m.EventProgression, m.ColProgression02)},
		},
		{
			Name:   "Hint Usage",
			Title:  "Hint Usage Trends",
			XLabel: "Level",
			YLabel: "Number of Hints Used",
			Explanation: "Track how often hints are used and create a reward system for solving puzzles without hints. " +
				"For instance, levels with excessive hint usage might need clearer instructions or design tweaks.",
			Recommendation: "Encourage players to minimize hint usage by introducing rewards for hint-free completions.",
			builder:        bars{countBy(m.EventHint, m.ColProgression02)},
		},
		{
			Name:  "Session Gaps",
			Title: "Session Gaps",
			Explanation: "This chart categorizes session gaps into short, medium, and long periods. " +
				"It helps identify players who may be at risk of churning due to extended inactivity.",
			Recommendation: "Send re-engagement emails or notifications to players with long gaps. " +
				"Provide incentives like skip tokens or hints to bring them back.",
			builder: sessionPie(aggregate.Span(m.ColClientTS), aggregate.SessionSeconds),
		},
		{
			Name:  retentionName,
			Title: retentionTitle,
			Explanation: "Implement streak-based rewards to motivate users to solve puzzles daily. " +
				"For instance, increasing rewards for consecutive daily logins can enhance retention.",
			Recommendation: "Design daily puzzle challenges with increasing rewards for maintaining streaks.",
			builder:        sessionPie(aggregate.Sum(m.ColSessionLength), aggregate.SessionSeconds),
		},
	}}
}

func rpg() Vertical {
	return Vertical{Name: "rpg", Strategies: []Strategy{
		{
			Name:   "Quest Completion Rates",
			Title:  "Quest Completion Rates",
			XLabel: "Quest Stage",
			YLabel: "Number of Completions",
			Explanation: "This chart highlights the completion rates of various quests or levels. " +
				"Low completion rates indicate potential bottlenecks where players struggle or lose interest.",
			Recommendation: "Revise rewards for underperforming quests or add hints to improve player success rates. " +
				"Monitor completion rates after adjustments to ensure player engagement.",
			builder: bars{countBy(m.EventProgression, m.ColProgression02)},
		},
		{
			Name:        "Resource Balancing",
			Title:       "Resource Usage Trends",
			XLabel:      "Resource Type",
			YLabel:      "Usage Count",
			Explanation: "This visualization shows the frequency of resource usage, identifying the most depleted resources and imbalances in the game economy.",
			Recommendation: "Introduce challenges or quests to replenish highly consumed resources. " +
				"Ensure resource availability aligns with gameplay requirements to maintain balance.",
			builder: bars{countBy(m.EventResource, m.ColCurrency)},
		},
		{
			Name:        "Progression Pathways",
			Title:       "Progression Pathways",
			XLabel:      "Progression Path",
			YLabel:      "Number of Players",
			Explanation: "This chart compares player activity across different progression paths, highlighting player preferences for linear or open-world gameplay.",
			Recommendation: "Optimize content distribution across paths. " +
				"For example, enhance popular paths with new challenges while making lesser-used paths more engaging.",
			builder: bars{countBy(m.EventProgression, m.ColProgression01)},
		},
		{
			Name:           retentionName,
			Title:          retentionTitle,
			Explanation:    "This chart segments session lengths into short, medium, and long categories to analyze player engagement.",
			Recommendation: "Expand the game world with side quests tied to lore and high-value rewards to keep players engaged.",
			builder:        sessionPie(aggregate.Count(), aggregate.SessionSeconds),
		},
	}}
}

func shooter() Vertical {
	return Vertical{Name: "shooter", Strategies: []Strategy{
		{
			Name:   "Kill-to-Death Ratios",
			Title:  "Kill-to-Death Ratios",
			XLabel: "K/D Ratio",
			YLabel: "Frequency",
			Explanation: "This chart visualizes the Kill-to-Death (K/D) ratios of players. " +
				"A low K/D ratio may indicate challenging mechanics or balance issues, especially for newer players.",
			Recommendation: "Consider tutorials or balancing adjustments to support players with low K/D ratios and encourage long-term engagement.",
			builder: histogram{src: ratio{aggregate.RatioQuery{
				Key:         m.ColUserID,
				Numerator:   m.ColKills,
				Denominator: m.ColDeaths,
			}}, bins: aggregate.DefaultBins},
		},
		{
			Name:           "Weapon Usage Analysis",
			Title:          "Weapon Usage Analysis",
			XLabel:         "Weapon",
			YLabel:         "Usage Count",
			Explanation:    "This chart shows the frequency of usage for each weapon, identifying popular choices among players.",
			Recommendation: "Develop gameplay challenges or upgrades around the most frequently used weapons to sustain engagement.",
			builder: bars{aggregate.Query{
				Keys:        []string{m.ColWeaponID},
				Metric:      aggregate.Count(),
				DropMissing: []string{m.ColWeaponID},
			}},
		},
		{
			Name:           "Map Engagement",
			Title:          "Map Engagement Trends",
			XLabel:         "Map",
			YLabel:         "Number of Interactions",
			Explanation:    "This chart identifies the most frequently played maps, which can help prioritize updates or new content.",
			Recommendation: "Expand or refine popular maps by adding objectives or variations to keep players engaged.",
			builder: bars{aggregate.Query{
				Keys:        []string{m.ColMapID},
				Metric:      aggregate.Count(),
				DropMissing: []string{m.ColMapID},
			}},
		},
		{
			Name:           retentionName,
			Title:          retentionTitle,
			Explanation:    "This chart segments session lengths into short, medium, and long categories to analyze player engagement.",
			Recommendation: "Offer retention incentives such as timed weapon unlocks or map-exclusive rewards to encourage returning players.",
			builder:        sessionPie(aggregate.Count(), aggregate.SessionSeconds),
		},
	}}
}

func simulation() Vertical {
	return Vertical{Name: "simulation", Strategies: []Strategy{
		{
			Name:           "Build Completion Rates",
			Title:          "Build Completion Rates",
			XLabel:         "Build Type",
			YLabel:         "Number of Completions",
			Explanation:    "Analyze the average time to complete builds or upgrades and optimize pacing.",
			Recommendation: "Adjust build timers and offer boosts for frequently incomplete builds to improve engagement.",
			builder:        bars{countBy(m.EventProgression, m.ColProgression02)},
		},
		{
			Name:           "Resource Consumption Trends",
			Title:          "Resource Consumption Trends",
			XLabel:         "Resource Type",
			YLabel:         "Usage Count",
			Explanation:    "Study which resources are used most frequently and ensure a balanced acquisition rate.",
			Recommendation: "Increase availability or rewards for high-demand resources to maintain player satisfaction.",
			builder:        bars{countBy(m.EventResource, m.ColCurrency)},
		},
		{
			Name:           "Session Diversity",
			Title:          "Session Diversity",
			Explanation:    "Look at user behaviors to identify repetitive actions and add variety to gameplay loops.",
			Recommendation: "Introduce new gameplay elements or surprises to reduce repetition and enhance engagement.",
			builder:        sessionPie(aggregate.Count(), aggregate.SessionSeconds),
		},
		{
			Name:           retentionName,
			Title:          retentionTitle,
			Explanation:    "Add time-limited scenarios or challenges that organically push players to explore different game mechanics.",
			Recommendation: "Create dynamic events or seasonal content to maintain player interest and retention.",
			builder:        sessionPie(aggregate.Count(), aggregate.SessionSeconds),
		},
	}}
}

func sports() Vertical {
	return Vertical{Name: "sports", Strategies: []Strategy{
		{
			Name:           "Match Participation Trends",
			Title:          "Match Participation Trends",
			XLabel:         "Match Phase",
			YLabel:         "Number of Users",
			Explanation:    "Examine drop-off points in match sessions to identify frustrating mechanics or features.",
			Recommendation: "Refine pacing or rules at phases with significant drop-offs, such as overtime.",
			builder:        bars{countBy(m.EventProgression, m.ColMatchPhase)},
		},
		{
			Name:           "In-game Tournaments",
			Title:          "In-game Tournament Participation",
			XLabel:         "Tournament Stage",
			YLabel:         "Number of Participants",
			Explanation:    "Assess participation in events or leagues and correlate with player retention.",
			Recommendation: "Introduce better rewards or accessibility options to increase tournament participation.",
			builder:        bars{countBy(m.EventProgression, m.ColMatchPhase)},
		},
		{
			Name:   "Customization Usage",
			Title:  "Customization Usage",
			XLabel: "Customization Type",
			YLabel: "Number of Selections",
			Explanation: "This chart tracks how often players use various customization features, such as avatars, teams, or jerseys. " +
				"Frequent usage indicates strong interest in certain customization types.",
			Recommendation: "Focus on expanding popular customization options and introducing themed variations to maintain engagement. " +
				"For example, add seasonal or event-specific customization items.",
			builder: bars{countBy(m.EventCustomization, m.ColCustomizationType)},
		},
		{
			Name:           retentionName,
			Title:          retentionTitle,
			Explanation:    "Introduce regular tournaments with leaderboards and low entry barriers to foster competition.",
			Recommendation: "Develop more accessible tournaments and highlight leaderboard rewards to keep players engaged.",
			builder:        sessionPie(aggregate.Count(), aggregate.SessionSeconds),
		},
	}}
}

func strategy() Vertical {
	return Vertical{Name: "strategy", Strategies: []Strategy{
		{
			Name:           "Battle Success Rates",
			Title:          "Battle Success Rates",
			XLabel:         "Battle Stage",
			YLabel:         "Number of Successes",
			Explanation:    "Analyze the win/loss ratio across levels to identify overly difficult battles.",
			Recommendation: "Adjust difficulty or provide additional tools for stages with disproportionately low success rates.",
			builder:        bars{countBy(m.EventProgression, m.ColProgression02)},
		},
		{
			Name:           "Resource Scarcity Impact",
			Title:          "Resource Scarcity Impact",
			XLabel:         "Resource Type",
			YLabel:         "Usage Count",
			Explanation:    "Study the impact of resource scarcity on user drop-offs.",
			Recommendation: "Provide alternative acquisition methods for scarce resources to reduce drop-offs.",
			builder:        bars{countBy(m.EventResource, m.ColCurrency)},
		},
		{
			Name:           "Group Play Dynamics",
			Title:          "Group Play Dynamics",
			XLabel:         "Number of Group Activities per Session",
			YLabel:         "Frequency",
			Explanation:    "Examine participation in alliances or group missions to encourage cooperative strategies.",
			Recommendation: "Introduce rewards for group participation and highlight cooperative gameplay opportunities.",
			builder:        histogram{src: grouped{perSession(aggregate.Count())}, bins: aggregate.DefaultBins},
		},
		{
			Name:           retentionName,
			Title:          retentionTitle,
			Explanation:    "Introduce team-based rewards or collaborative missions to encourage sustained engagement.",
			Recommendation: "Develop cooperative missions with compelling rewards to promote teamwork and engagement.",
			builder:        sessionPie(aggregate.Count(), aggregate.SessionSeconds),
		},
	}}
}
