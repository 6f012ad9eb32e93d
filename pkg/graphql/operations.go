package graphql

const dimensionsListQuery = `
fragment ValueFields on SurveyDimensionValueType {
  slug
  color
  canRemove
  title(lang: $locale)
  titleFi: title(lang: "fi")
  titleEn: title(lang: "en")
}

fragment DimensionRowGroup on SurveyDimensionType {
  slug
  canRemove
  title(lang: $locale)
  isKeyDimension
  isMultiValue
  isShownToRespondent
  titleFi: title(lang: "fi")
  titleEn: title(lang: "en")
  values {
    ...ValueFields
  }
}

query DimensionsList($eventSlug: String!, $surveySlug: String!, $locale: String!) {
  event(slug: $eventSlug) {
    name
    forms {
      survey(slug: $surveySlug) {
        title(lang: $locale)
        dimensions {
          ...DimensionRowGroup
        }
      }
    }
  }
}
`

const surveySummaryQuery = `
query SurveySummary(
  $eventSlug: String!,
  $surveySlug: String!,
  $locale: String,
  $filters: [DimensionFilterInput!],
) {
  event(slug: $eventSlug) {
    name
    forms {
      survey(slug: $surveySlug) {
        title(lang: $locale)
        fields(lang: $locale)
        summary(filters: $filters)
        countFilteredResponses: countResponses(filters: $filters)
        countResponses
        dimensions {
          slug
          title(lang: $locale)
          values {
            slug
            title(lang: $locale)
          }
        }
      }
    }
  }
}
`

const putDimensionMutation = `
mutation PutSurveyDimension($input: PutSurveyDimensionInput!) {
  putSurveyDimension(input: $input) {
    dimension {
      slug
    }
  }
}
`

const deleteDimensionMutation = `
mutation DeleteSurveyDimension($input: DeleteSurveyDimensionInput!) {
  deleteSurveyDimension(input: $input) {
    slug
  }
}
`

const putDimensionValueMutation = `
mutation PutSurveyDimensionValue($input: PutSurveyDimensionValueInput!) {
  putSurveyDimensionValue(input: $input) {
    value {
      slug
    }
  }
}
`

const deleteDimensionValueMutation = `
mutation DeleteSurveyDimensionValue($input: DeleteSurveyDimensionValueInput!) {
  deleteSurveyDimensionValue(input: $input) {
    slug
  }
}
`
