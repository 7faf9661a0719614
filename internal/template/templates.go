package template

// Stage keys for the outreach sequence.
const (
	StageInitial     = "initial"
	StageFollowUp1   = "follow_up_1"
	StageFollowUp2   = "follow_up_2"
	StageFollowUp3   = "follow_up_3"
	StageCallInvite  = "call_invite"
	StagePricingInfo = "pricing_info"
	StageOnboarding  = "onboarding"
)

// FollowUpStage returns the stage key for follow-up number n (1-based).
func FollowUpStage(n int) string {
	switch n {
	case 1:
		return StageFollowUp1
	case 2:
		return StageFollowUp2
	default:
		return StageFollowUp3
	}
}

// Copy lives here instead of a DB on purpose: the sequence is short, changes
// go through code review, and the process treats templates as immutable.
var templates = map[string]map[string]Message{
	StageInitial: {
		"us": {
			Subject: "Quick question about {{company}}",
			Body: "<p>Hi {{first_name}},</p>" +
				"<p>I noticed you're the owner of {{company}} and I wanted to reach out.</p>" +
				"<p>We've been helping {{business_type}} like yours streamline their operations and increase revenue.</p>" +
				"<p>Would you be interested in a quick 15-minute chat to see if we could help you too?</p>" +
				"<p>Best regards,<br>Rafael</p>",
		},
		"india": {
			Subject: "Regarding your business: {{company}}",
			Body: "<p>Hello {{first_name}},</p>" +
				"<p>I came across {{company}} while researching leading {{business_type}} in {{country}}.</p>" +
				"<p>Our company specializes in helping businesses like yours increase efficiency and growth.</p>" +
				"<p>Would you be open to a brief conversation about how we might help your business?</p>" +
				"<p>Regards,<br>Rafael</p>",
		},
	},
	StageFollowUp1: {
		"us": {
			Subject: "Following up: {{company}}",
			Body: "<p>Hi {{first_name}},</p>" +
				"<p>I wanted to follow up on my previous email about how we could help {{company}}.</p>" +
				"<p>Many {{business_type}} owners we work with have seen significant improvements in just a few weeks.</p>" +
				"<p>Would you be available for a quick call this week?</p>" +
				"<p>Best regards,<br>Rafael</p>",
		},
		"india": {
			Subject: "Quick follow-up: {{company}}",
			Body: "<p>Hello {{first_name}},</p>" +
				"<p>I'm following up on my previous message regarding {{company}}.</p>" +
				"<p>We've helped several {{business_type}} in India achieve remarkable results recently.</p>" +
				"<p>Would you like to schedule a short call to discuss how we could help you too?</p>" +
				"<p>Regards,<br>Rafael</p>",
		},
	},
	StageFollowUp2: {
		"us": {
			Subject: "One more thing about {{company}}",
			Body: "<p>Hi {{first_name}},</p>" +
				"<p>I thought I'd share that we recently helped a {{business_type}} similar to {{company}} increase their revenue by 30%.</p>" +
				"<p>I'd love to show you how we did it in a quick call.</p>" +
				"<p>Let me know if you're interested!</p>" +
				"<p>Best regards,<br>Rafael</p>",
		},
		"india": {
			Subject: "Case study for {{company}}",
			Body: "<p>Hello {{first_name}},</p>" +
				"<p>I wanted to share a case study about how we helped a {{business_type}} in India similar to {{company}}.</p>" +
				"<p>They were facing challenges with growth, and we helped them implement solutions that increased their revenue.</p>" +
				"<p>Would you like to see how we could apply similar strategies to your business?</p>" +
				"<p>Regards,<br>Rafael</p>",
		},
	},
	StageFollowUp3: {
		"us": {
			Subject: "Final thoughts for {{company}}",
			Body: "<p>Hi {{first_name}},</p>" +
				"<p>I've reached out a few times about how we could help {{company}} grow as a {{business_type}}.</p>" +
				"<p>I understand you might be busy, so this will be my last email for now.</p>" +
				"<p>If you'd like to explore how we could work together in the future, please feel free to reach out.</p>" +
				"<p>Best regards,<br>Rafael</p>",
		},
		"india": {
			Subject: "Last message regarding {{company}}",
			Body: "<p>Hello {{first_name}},</p>" +
				"<p>I've sent a few messages about how we could support {{company}} as a growing {{business_type}} in India.</p>" +
				"<p>This will be my last email, but please know my offer to help still stands.</p>" +
				"<p>Whenever you're ready to discuss, I'm here to help.</p>" +
				"<p>Regards,<br>Rafael</p>",
		},
	},
	StageCallInvite: {
		"us": {
			Subject: "Call details for our discussion",
			Body: "<p>Hi {{first_name}},</p>" +
				"<p>Thank you for your interest in discussing how we can help {{company}}.</p>" +
				"<p>You can book a time on my calendar here: <a href=\"{{calendly_link}}\">Schedule a Call</a></p>" +
				"<p>I look forward to our conversation!</p>" +
				"<p>Best regards,<br>Rafael</p>",
		},
		"india": {
			Subject: "Schedule our call",
			Body: "<p>Hello {{first_name}},</p>" +
				"<p>Thanks for your interest in exploring how we can help {{company}} grow.</p>" +
				"<p>Please use this link to book a time that works for you: <a href=\"{{calendly_link}}\">Book a Call</a></p>" +
				"<p>I'm looking forward to our discussion!</p>" +
				"<p>Regards,<br>Rafael</p>",
		},
	},
	StagePricingInfo: {
		"us": {
			Subject: "Investment details for {{company}}",
			Body: "<p>Hi {{first_name}},</p>" +
				"<p>Thank you for your interest in our services for {{company}}.</p>" +
				"<p>Based on our discussion, the investment for our solution would be ${{price}}.</p>" +
				"<p>You can make the payment securely through this link: <a href=\"{{payment_link}}\">Make Payment</a></p>" +
				"<p>Once the payment is confirmed, we'll begin the onboarding process right away.</p>" +
				"<p>Best regards,<br>Rafael</p>",
		},
		"india": {
			Subject: "Pricing information for {{company}}",
			Body: "<p>Hello {{first_name}},</p>" +
				"<p>Thank you for considering our services for {{company}}.</p>" +
				"<p>The investment for our solution would be ₹{{price}}.</p>" +
				"<p>You can complete the payment through this secure link: <a href=\"{{payment_link}}\">Make Payment</a></p>" +
				"<p>After payment confirmation, we'll start the onboarding process immediately.</p>" +
				"<p>Regards,<br>Rafael</p>",
		},
	},
	StageOnboarding: {
		"us": {
			Subject: "Welcome onboard, {{first_name}}! Next steps for {{company}}",
			Body: "<p>Hi {{first_name}},</p>" +
				"<p>Thank you for your payment! We're excited to start working with {{company}}.</p>" +
				"<p>Here are the next steps:</p>" +
				"<ol><li>Complete our onboarding questionnaire</li>" +
				"<li>Schedule your kickoff call: <a href=\"{{calendly_link}}\">Book here</a></li>" +
				"<li>Review our welcome packet</li></ol>" +
				"<p>Best regards,<br>Rafael</p>",
		},
		"india": {
			Subject: "Welcome to our services, {{first_name}}! Next steps for {{company}}",
			Body: "<p>Hello {{first_name}},</p>" +
				"<p>Thank you for your payment! We're thrilled to begin working with {{company}}.</p>" +
				"<p>Here's what happens next:</p>" +
				"<ol><li>Fill out our onboarding form</li>" +
				"<li>Book your initial strategy call: <a href=\"{{calendly_link}}\">Book here</a></li>" +
				"<li>Check out our welcome materials</li></ol>" +
				"<p>Regards,<br>Rafael</p>",
		},
	},
}
