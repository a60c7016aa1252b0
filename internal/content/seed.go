package content

import q "github.com/abhisek/cyberlab/internal/question"

// Default returns the built-in "Cybersecurity Foundations" catalog.
func Default() *Catalog {
	return NewCatalog(ciaTriad(), threatActors(), incidentResponse())
}

// opts builds options from alternating key/text pairs.
func opts(kv ...string) []q.Option {
	out := make([]q.Option, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, q.Option{Key: kv[i], Text: kv[i+1]})
	}
	return out
}

var ciaOptions = opts("C", "Confidentiality", "I", "Integrity", "A", "Availability")

func ciaTriad() *Exercise {
	return &Exercise{
		ID:            "exercise1",
		Number:        1,
		Title:         "CIA Triad Analysis",
		EstimatedTime: "30-40 minutes",
		Description: "Apply Confidentiality, Integrity and Availability to mission systems. " +
			"You will decide which property matters most in each context and which controls protect it.",
		Objectives: []string{
			"Apply CIA Triad principles to system security requirements",
			"Understand how mission context shifts security priorities",
			"Identify appropriate controls for each property",
			"Recognize trade-offs between the three properties",
		},
		Scenarios: []*Scenario{
			{
				ID:    "1a",
				Title: "Scenario 1A: Intelligence Database",
				Description: "An intelligence database holds information about adversary positions, " +
					"capabilities and intentions. Analysts at several sites query it over classified " +
					"networks to brief commanders.",
				Questions: []*q.Question{
					{
						ID:     "1a_q1",
						Prompt: "Which CIA property is MOST critical for this system?",
						Points: 2,
						Feedback: q.Feedback{
							Correct:   "Confidentiality is paramount: disclosure could compromise operations and endanger personnel.",
							Incorrect: "The data is classified. Integrity and availability matter, but disclosure is the worst outcome here.",
						},
						ModelAnswer: "Confidentiality. Disclosure of intelligence data could compromise operations.",
						Body:        &q.MultipleChoice{Options: ciaOptions, Correct: "C"},
					},
					{
						ID:     "1a_q2",
						Prompt: "Which controls BEST protect this system's confidentiality? (Select all that apply)",
						Points: 3,
						Feedback: q.Feedback{
							Correct:   "Encryption, MFA, need-to-know access and audit logging all limit who can read the data.",
							Incorrect: "Focus on who can access and read the data. Load balancing and backups serve availability.",
						},
						ModelAnswer: "A, B, C, E. Controls that restrict and record who reads the data.",
						Body: &q.Checklist{
							Options: opts(
								"A", "Strong encryption at rest and in transit",
								"B", "Multi-factor authentication",
								"C", "Strict need-to-know access controls",
								"D", "Load balancing for performance",
								"E", "Comprehensive audit logging",
								"F", "Automated backup systems",
							),
							Correct: []string{"A", "B", "C", "E"},
						},
					},
					{
						ID:     "1a_q3",
						Prompt: "What is the PRIMARY trade-off when maximizing confidentiality for this system?",
						Points: 2,
						Feedback: q.Feedback{
							Correct:   "Tight access controls slow analysts down when intelligence is urgent.",
							Incorrect: "The tension is between confidentiality and availability: every extra check adds delay.",
						},
						ModelAnswer: "B. Strict controls slow access to time-sensitive intelligence.",
						Body: &q.MultipleChoice{
							Options: opts(
								"A", "Increased hardware costs",
								"B", "Reduced availability for analysts who need urgent intelligence",
								"C", "Lower data integrity",
								"D", "Reduced network bandwidth",
							),
							Correct: "B",
						},
					},
				},
			},
			{
				ID:    "1b",
				Title: "Scenario 1B: Logistics During Operations",
				Description: "A logistics system tracks ammunition, fuel, food and medical supplies for " +
					"forward-deployed units. Supply requests and allocations flow through it.",
				Questions: []*q.Question{
					{
						ID:     "1b_q1",
						Prompt: "Rank the CIA properties for this system during active operations (1 = highest priority).",
						Points: 2,
						Feedback: q.Feedback{
							Correct:   "Availability first, integrity second, confidentiality third.",
							Incorrect: "Units need supplies now; wrong destinations are next worst; disclosure is survivable.",
						},
						ModelAnswer: "1 Availability, 2 Integrity, 3 Confidentiality",
						Body: &q.Ranking{
							Items:        []string{"Confidentiality", "Integrity", "Availability"},
							CorrectOrder: []int{3, 2, 1},
						},
					},
					{
						ID:     "1b_q2",
						Prompt: "An adversary compromises the INTEGRITY of the logistics data. What is the MOST dangerous consequence?",
						Points: 3,
						Feedback: q.Feedback{
							Correct:   "Misdirected ammunition or medical supplies can directly cost lives.",
							Incorrect: "Wrong costs or late reports are inconvenient. Supplies sent to the wrong place are dangerous.",
						},
						ModelAnswer: "B. Misdirected supplies leave units without critical resources.",
						Body: &q.MultipleChoice{
							Options: opts(
								"A", "Supply costs are reported incorrectly",
								"B", "Ammunition and medical supplies go to the wrong locations",
								"C", "Historical supply data is corrupted",
								"D", "Supply reports are delayed by 30 minutes",
							),
							Correct: "B",
						},
					},
					{
						ID:     "1b_q3",
						Prompt: "Explain how you would keep this system available while a denial-of-service attack is under way.",
						Hint:   "Think about redundancy and how you would keep requests flowing if the primary path fails.",
						Points: 4,
						Feedback: q.Feedback{
							Correct:   "You covered both redundancy and a fallback path for supply requests.",
							Incorrect: "An availability plan needs redundant capacity and a way to keep working when it fails.",
						},
						ModelAnswer: "Deploy redundant servers and network paths, filter or rate-limit attack traffic, " +
							"and keep a manual or offline fallback so units can still request resupply.",
						Body: &q.FreeText{
							Required:    []string{"redundan", "fallback"},
							Bonus:       []string{"rate limit", "offline", "failover"},
							MinKeywords: 1,
						},
					},
				},
			},
		},
	}
}

func threatActors() *Exercise {
	return &Exercise{
		ID:            "exercise2",
		Number:        2,
		Title:         "Threat Actor Analysis",
		EstimatedTime: "45-60 minutes",
		Description: "Profile the motivations, capabilities and methods of the actors that target " +
			"defense systems, then recommend defenses based on that analysis.",
		Objectives: []string{
			"Profile threat actor capabilities, motivations and methods",
			"Distinguish nation-state from criminal actors",
			"Recommend defensive measures based on threat analysis",
		},
		Scenarios: []*Scenario{
			{
				ID:    "2a",
				Title: "Part A: Threat Actor Profiling",
				Description: "Understanding why and how an adversary operates is the first step in " +
					"choosing defenses that will actually stop them.",
				Questions: []*q.Question{
					{
						ID:     "2a_q1",
						Prompt: "What is the PRIMARY motivation of a nation-state APT group?",
						Points: 2,
						Feedback: q.Feedback{
							Correct:   "Nation-state groups pursue strategic intelligence for their sponsoring government.",
							Incorrect: "Criminals want money and hacktivists want attention. State-sponsored groups want intelligence.",
						},
						ModelAnswer: "B. Strategic intelligence and geopolitical advantage.",
						Body: &q.MultipleChoice{
							Options: opts(
								"A", "Financial gain through ransomware",
								"B", "Strategic intelligence and geopolitical advantage",
								"C", "Notoriety and public recognition",
								"D", "Disruption for ideological reasons",
							),
							Correct: "B",
						},
					},
					{
						ID:     "2a_q2",
						Prompt: "Which are typical techniques of nation-state APT groups? (Select all that apply)",
						Points: 3,
						Feedback: q.Feedback{
							Correct:   "Custom tooling, zero-days, long-term persistence and targeted phishing define an APT.",
							Incorrect: "APTs are patient and precise. Noisy smash-and-grab attacks and commodity malware are criminal traits.",
						},
						ModelAnswer: "A, B, D, F. Sophisticated, patient and targeted.",
						Body: &q.Checklist{
							Options: opts(
								"A", "Custom malware development",
								"B", "Zero-day exploit acquisition",
								"C", "Quick smash-and-grab attacks",
								"D", "Long-term persistent access",
								"E", "Commodity malware from dark web markets",
								"F", "Targeted spear-phishing campaigns",
							),
							Correct: []string{"A", "B", "D", "F"},
						},
					},
					{
						ID:     "2a_q3",
						Prompt: "How do criminal ransomware operations usually DIFFER from nation-state intrusions?",
						Points: 2,
						Feedback: q.Feedback{
							Correct:   "Criminal groups move fast, make noise and monetize quickly.",
							Incorrect: "Patience, custom tools and intelligence goals belong to nation-states, not criminals.",
						},
						ModelAnswer: "B. Faster, noisier and more opportunistic.",
						Body: &q.MultipleChoice{
							Options: opts(
								"A", "They are more patient and use custom tools",
								"B", "They are faster, noisier and more opportunistic",
								"C", "They focus on long-term intelligence gathering",
								"D", "They always use zero-day exploits",
							),
							Correct: "B",
						},
					},
				},
			},
			{
				ID:    "2b",
				Title: "Part B: Defense Recommendations",
				Description: "A personnel management system holding records for thousands of service " +
					"members is a likely APT target. Recommend how to defend it.",
				Questions: []*q.Question{
					{
						ID:     "2b_q1",
						Prompt: "Rank these Cyber Kill Chain stages in the order an attacker performs them.",
						Points: 3,
						Feedback: q.Feedback{
							Correct:   "Reconnaissance, then delivery, then exploitation, then actions on objectives.",
							Incorrect: "Attackers research first, deliver, exploit, and only then act on objectives.",
						},
						ModelAnswer: "1 Reconnaissance, 2 Delivery, 3 Exploitation, 4 Actions on Objectives",
						Body: &q.Ranking{
							Items:        []string{"Exploitation", "Actions on Objectives", "Reconnaissance", "Delivery"},
							CorrectOrder: []int{3, 4, 1, 2},
						},
					},
					{
						ID:     "2b_q2",
						Prompt: "Which defenses disrupt spear-phishing delivery? (Select all that apply)",
						Points: 3,
						Feedback: q.Feedback{
							Correct:   "Email filtering, user training and link sandboxing all break the delivery stage.",
							Incorrect: "Delivery is stopped at the mailbox and by the user. Backups and UPS units do not help there.",
						},
						ModelAnswer: "A, B, D. Filter, train and detonate suspicious content safely.",
						Body: &q.Checklist{
							Options: opts(
								"A", "Email gateway filtering",
								"B", "Phishing awareness training",
								"C", "Offsite backups",
								"D", "Attachment and link sandboxing",
								"E", "Uninterruptible power supplies",
							),
							Correct: []string{"A", "B", "D"},
						},
					},
					{
						ID:     "2b_q3",
						Prompt: "Describe how you would detect an APT that already has persistent access to this system.",
						Hint:   "Consider what traces long-term access leaves behind and where you would look for them.",
						Points: 4,
						Feedback: q.Feedback{
							Correct:   "You described monitoring for the traces persistence leaves behind.",
							Incorrect: "Detection relies on logging and looking for anomalous behavior over time.",
						},
						ModelAnswer: "Centralize logs, baseline normal behavior, hunt for anomalies such as unusual " +
							"logins or outbound traffic, and match against known indicators of compromise.",
						Body: &q.FreeText{
							Required:    []string{"log", "anomal", "monitor"},
							Bonus:       []string{"indicator", "baseline", "threat hunt"},
							MinKeywords: 1,
						},
					},
				},
			},
		},
	}
}

func incidentResponse() *Exercise {
	return &Exercise{
		ID:            "exercise3",
		Number:        3,
		Title:         "Incident Response",
		EstimatedTime: "30-45 minutes",
		Description: "A workstation on a mission network shows signs of compromise. Work through " +
			"the response from first detection to lessons learned.",
		Objectives: []string{
			"Sequence the phases of incident response",
			"Choose containment actions that preserve evidence",
			"Communicate risk and mitigation to leadership",
		},
		Scenarios: []*Scenario{
			{
				ID:    "3a",
				Title: "Part A: Initial Assessment",
				Description: "The security operations center flags outbound traffic from a workstation " +
					"to an unknown host at 02:00 every night.",
				Questions: []*q.Question{
					{
						ID:     "3a_q1",
						Prompt: "Rank the incident response phases in order.",
						Points: 4,
						Feedback: q.Feedback{
							Correct:   "Identify, contain, eradicate, recover.",
							Incorrect: "You must identify an incident before containing it, and contain it before eradicating it.",
						},
						ModelAnswer: "1 Identification, 2 Containment, 3 Eradication, 4 Recovery",
						Body: &q.Ranking{
							Items:        []string{"Eradication", "Recovery", "Identification", "Containment"},
							CorrectOrder: []int{3, 4, 1, 2},
						},
					},
					{
						ID:     "3a_q2",
						Prompt: "What should you do FIRST with the affected workstation?",
						Points: 2,
						Feedback: q.Feedback{
							Correct:   "Isolating the host stops the traffic and keeps memory evidence intact.",
							Incorrect: "Wiping or rebooting destroys evidence. Isolate first.",
						},
						ModelAnswer: "C. Isolate it from the network without powering it off.",
						Body: &q.MultipleChoice{
							Options: opts(
								"A", "Reimage it immediately",
								"B", "Reboot it to clear the malware",
								"C", "Isolate it from the network without powering it off",
								"D", "Ask the user to keep working while you watch",
							),
							Correct: "C",
						},
					},
				},
			},
			{
				ID:    "3b",
				Title: "Part B: Reporting and Lessons Learned",
				Description: "The intrusion is contained. Leadership wants to know what happened and " +
					"what will stop it from happening again.",
				Questions: []*q.Question{
					{
						ID:     "3b_q1",
						Prompt: "Which belong in the post-incident report? (Select all that apply)",
						Points: 3,
						Feedback: q.Feedback{
							Correct:   "Timeline, root cause and corrective actions make a useful report.",
							Incorrect: "A report explains what happened and how to prevent it, not who to blame.",
						},
						ModelAnswer: "A, B, D. Timeline, root cause and corrective actions.",
						Body: &q.Checklist{
							Options: opts(
								"A", "Timeline of events",
								"B", "Root cause analysis",
								"C", "Names of staff to discipline",
								"D", "Corrective actions and owners",
							),
							Correct: []string{"A", "B", "D"},
						},
					},
					{
						ID:     "3b_q2",
						Prompt: "Brief leadership: how should the organization handle the vulnerability that allowed this intrusion?",
						Hint:   "Leaders want to hear about risk and what you will do about it.",
						Points: 4,
						Feedback: q.Feedback{
							Correct:   "You framed the issue as risk and gave a concrete mitigation plan.",
							Incorrect: "Leadership briefings should assess the risk and explain how you will mitigate it.",
						},
						ModelAnswer: "Assess the risk the vulnerability poses to the mission, mitigate it by patching " +
							"or compensating controls, and monitor for recurrence.",
						Body: &q.FreeText{
							Required:    []string{"risk", "mitigat"},
							Bonus:       []string{"patch", "monitor", "compensating"},
							MinKeywords: 1,
						},
					},
				},
			},
		},
	}
}
